package service

import "errors"

// Typed failures surfaced by the parking engine and its collaborators.
// Handlers map these to HTTP statuses; nothing is retried internally and
// no partial state is ever left behind a failed operation.
var (
	ErrSlotNotFound    = errors.New("parking: slot not found")
	ErrSlotOccupied    = errors.New("parking: slot already occupied")
	ErrSlotExists      = errors.New("parking: slot already exists")
	ErrSlotReferenced  = errors.New("parking: slot has parking history")
	ErrSessionNotFound = errors.New("parking: active session not found")
	ErrSessionClosed   = errors.New("parking: session already closed")
	ErrPaymentNotFound = errors.New("parking: payment not found")
	ErrInvalidInput    = errors.New("parking: invalid input")

	// ErrPrincipalRequired is returned when an exit is attempted without
	// an authenticated user to attribute the payment to.
	ErrPrincipalRequired = errors.New("parking: recording user required")

	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUsernameTaken      = errors.New("auth: username already taken")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)
