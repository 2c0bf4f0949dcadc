package domain

import "errors"

var (
	ErrArtistNotFound = errors.New("artist not found")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidRange   = errors.New("invalid date range")
)
