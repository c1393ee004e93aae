// Package repository contains the data access layer, separated from HTTP
// handlers. The sentinel errors below let handlers translate storage
// failures into status codes without inspecting driver errors themselves.
package repository

import "errors"

// ErrNotFound is returned when no row exists for the requested id.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConstraint is returned when MySQL rejects a write for data-integrity
// reasons (null column, duplicate key, broken foreign key). Handlers
// translate it into an HTTP 400 response, distinct from internal failures.
var ErrConstraint = errors.New("constraint violation")
