package models

import "errors"

// Sentinel errors shared by the engine layer. Handlers map these to HTTP
// responses; nothing below the handler layer writes partial state when one
// of these is returned.
var (
	ErrInsufficientSpins    = errors.New("insufficient spins")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrMisconfiguredCatalog = errors.New("no active prizes with positive weight")
	ErrNotFound             = errors.New("record not found")
	ErrInvalidTransition    = errors.New("invalid state transition")
)
