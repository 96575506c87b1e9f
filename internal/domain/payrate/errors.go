package payrate

import "errors"

var (
	ErrRateTierNotFound = errors.New("rate tier not found")
	ErrRateTierExists   = errors.New("active rate tier already exists for this kind")
	ErrInvalidRateKind  = errors.New("invalid rate tier kind")
)
