// Package api holds the HTTP contract of the service: the OpenAPI document and the
// request/response models generated from it.
package api

//go:generate go tool oapi-codegen -config oapi-codegen.yaml openapi.yaml
