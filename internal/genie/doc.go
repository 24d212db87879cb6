// Package genie is a small client for the Databricks Genie spaces REST API.
//
// Endpoints used:
//
//	GET   /api/2.0/genie/spaces
//	GET   /api/2.0/genie/spaces/{id}?include_serialized_space=true
//	PATCH /api/2.0/genie/spaces/{id}
//
// The PATCH body is the envelope returned by GET with only serialized_space
// replaced. There is no locking: a concurrent edit between GET and PATCH is
// overwritten.
package genie
