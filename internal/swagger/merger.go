// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package swagger

import (
	"github.com/api2spec/webapi2swagger/pkg/types"
)

// MergeOptions selects what an existing document contributes to a merge.
type MergeOptions struct {
	// PreserveInfo keeps the existing info object when it has a title
	PreserveInfo bool

	// PreserveTags keeps the existing tag list
	PreserveTags bool

	// PreserveSecurity keeps existing security definitions and requirements
	PreserveSecurity bool

	// PreservePaths keeps existing operations the generated document lacks
	PreservePaths bool

	// PreserveDefinitions keeps existing definitions the generated document lacks
	PreserveDefinitions bool

	// PreserveDescriptions copies hand-written summaries and descriptions
	// onto generated operations that have none
	PreserveDescriptions bool
}

// DefaultMergeOptions returns the options used by --merge.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		PreserveInfo:         true,
		PreserveTags:         true,
		PreserveSecurity:     true,
		PreservePaths:        true,
		PreserveDefinitions:  true,
		PreserveDescriptions: true,
	}
}

// Merger combines a previously written document with a freshly generated one.
type Merger struct {
	options MergeOptions
}

// NewMerger creates a Merger with the given options.
func NewMerger(options MergeOptions) *Merger {
	return &Merger{
		options: options,
	}
}

// Merge updates generated in place with content from existing and returns
// it. Generated operations and definitions win on conflict.
func (m *Merger) Merge(existing, generated *types.Swagger) *types.Swagger {
	if existing == nil {
		return generated
	}
	if generated == nil {
		return existing
	}

	if m.options.PreserveInfo && existing.Info.Title != "" {
		generated.Info = existing.Info
	}
	if m.options.PreserveTags && len(existing.Tags) > 0 {
		generated.Tags = existing.Tags
	}
	if m.options.PreserveSecurity {
		if len(existing.SecurityDefinitions) > 0 {
			generated.SecurityDefinitions = existing.SecurityDefinitions
		}
		if len(existing.Security) > 0 {
			generated.Security = existing.Security
		}
	}

	if generated.Paths == nil {
		generated.Paths = make(map[string]*types.PathItem)
	}
	for path, old := range existing.Paths {
		if old == nil {
			continue
		}
		item := generated.Paths[path]
		for _, method := range types.Methods {
			oldOp := old.Operation(method)
			if oldOp == nil {
				continue
			}
			var op *types.Operation
			if item != nil {
				op = item.Operation(method)
			}

			switch {
			case op != nil && m.options.PreserveDescriptions:
				if op.Summary == "" {
					op.Summary = oldOp.Summary
				}
				if op.Description == "" {
					op.Description = oldOp.Description
				}
			case op == nil && m.options.PreservePaths:
				if item == nil {
					item = &types.PathItem{}
					generated.Paths[path] = item
				}
				item.SetOperation(method, oldOp)
			}
		}
	}

	if m.options.PreserveDefinitions {
		for name, schema := range existing.Definitions {
			if _, ok := generated.Definitions[name]; ok {
				continue
			}
			if generated.Definitions == nil {
				generated.Definitions = make(map[string]*types.Schema)
			}
			generated.Definitions[name] = schema
		}
	}

	return generated
}

// MergeDefault merges two documents using DefaultMergeOptions.
func MergeDefault(existing, generated *types.Swagger) *types.Swagger {
	return NewMerger(DefaultMergeOptions()).Merge(existing, generated)
}
