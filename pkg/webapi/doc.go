// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package webapi is the registration surface a web-API module builds
// against so that webapi2swagger can describe it.
//
// A module is a Go plugin (go build -buildmode=plugin) exporting a
// variable named WebApiConfig whose method set contains
//
//	Register(*webapi.Configuration)
//
// Register maps actions onto the configuration's route table:
//
//	type config struct{}
//
//	func (config) Register(c *webapi.Configuration) {
//		c.MapAction(http.MethodGet, "/items/{id:int}", webapi.Action{
//			Controller: "items",
//			Name:       "Get",
//			Input:      GetItemInput{},
//			Output:     Item{},
//		})
//	}
//
//	var WebApiConfig config
//
// Action inputs are structs whose fields bind through the path, query,
// header, form and body tags. Append ",optional" to mark a parameter the
// caller may omit:
//
//	type GetItemInput struct {
//		ID     int    `path:"id"`
//		Expand string `query:"expand,optional"`
//	}
//
// An input struct without binding tags is bound whole from the request body.
package webapi
