package catalog

import "errors"

var (
	ErrUnknownEntry = errors.New("catalog: unknown model")
	ErrInvalidName  = errors.New("catalog: invalid file name")
	ErrNoSources    = errors.New("catalog: no sources")
)
