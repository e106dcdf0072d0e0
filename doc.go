// Package odatajson decodes OData JSON request payloads into a typed entity
// graph, driven by an Entity Data Model (package edm).
//
// - Schema-directed recursive descent: entity, entity collection, structural
//   properties (primitive, type definition, enum, complex and their
//   collections) and expanded navigation properties
// - Strict by construction: every member of every JSON object must be a
//   declared property, a declared navigation property or control information
//   (@odata.*); custom annotations are rejected as not implemented
// - A stable error model via *Error (message key, JSON Pointer, parameters)
// - Pluggable JSON tokenizers (goccy/go-json by default, encoding/json,
//   go-json-experiment jsontext) with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the EDM under edm/, schema loaders under edm/csdl, and the CLI under cmd/odatadecode.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	model, err := csdl.Load("schema.yaml")
//	et, _ := model.EntityType("Namespace1_Alias.ETAllPrim")
//	d := odatajson.New(odatajson.WithMaxDepth(64))
//	e, err := d.Entity(ctx, r, et)
//	set, err := d.EntityCollection(ctx, r, et)
package odatajson
