// Package repository implements the persistence gateway over database/sql.
// Sentinel errors defined here let handlers translate failure scenarios
// into HTTP status codes without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity does not exist.
// Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert or update violates the
// unique email constraint. Per the documented API behavior this maps to
// 400, not 409.
var ErrEmailExists = errors.New("email already used")

// ErrPaymentNotFound is returned when a payment-status update addresses a
// booking with no payment row.
var ErrPaymentNotFound = errors.New("payment not found")
