package inventory

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownType       = errors.New("unknown record type")
	ErrUnknownFilter     = errors.New("unknown filter")
	ErrUnknownSortKey    = errors.New("unknown sort key")
	ErrSourceUnavailable = errors.New("inventory source unavailable")
)
