// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package isolate runs extraction in a separate worker process and carries
// the result back to the parent.
package isolate

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/api2spec/webapi2swagger/internal/extract"
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// Envelope is the single message a worker writes to its stdout.
type Envelope struct {
	Metadata *types.Metadata `json:"metadata,omitempty"`
	Error    *WireError      `json:"error,omitempty"`
}

// WireError is an error flattened for transport.
type WireError struct {
	Kind    string `json:"kind,omitempty"`
	Module  string `json:"module,omitempty"`
	Message string `json:"message"`
}

// NewEnvelope wraps an extraction result.
func NewEnvelope(meta *types.Metadata, err error) *Envelope {
	if err == nil {
		return &Envelope{Metadata: meta}
	}

	var extractErr *extract.Error
	if errors.As(err, &extractErr) {
		wire := &WireError{
			Kind:   extractErr.KindName(),
			Module: extractErr.Module,
		}
		if extractErr.Err != nil {
			wire.Message = extractErr.Err.Error()
		}
		return &Envelope{Error: wire}
	}
	return &Envelope{Error: &WireError{Message: err.Error()}}
}

// Result returns the metadata or the rebuilt error.
func (e *Envelope) Result() (*types.Metadata, error) {
	if e.Error == nil {
		if e.Metadata == nil {
			return nil, errors.New("worker returned an empty result")
		}
		return e.Metadata, nil
	}

	kind := extract.KindFromName(e.Error.Kind)
	if kind == nil {
		return nil, errors.New(e.Error.Message)
	}
	var cause error
	if e.Error.Message != "" {
		cause = errors.New(e.Error.Message)
	}
	return nil, &extract.Error{Kind: kind, Module: e.Error.Module, Err: cause}
}

// WriteEnvelope encodes e to w.
func WriteEnvelope(w io.Writer, e *Envelope) error {
	if err := json.NewEncoder(w).Encode(e); err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}
	return nil
}

// ReadEnvelope decodes one envelope from data.
func ReadEnvelope(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to read envelope: %w", err)
	}
	return &e, nil
}
