package core

import "errors"

var (
	ErrEmptyFile       = errors.New("dataset file is empty")
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidOutcome  = errors.New("invalid launch outcome")
	ErrInvalidPayload  = errors.New("invalid payload mass")
	ErrInvalidFlight   = errors.New("invalid flight number")
	ErrNegativePayload = errors.New("negative payload mass")
)
