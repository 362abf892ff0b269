package modelget

import "errors"

var (
	// ErrAllSourcesFailed is returned when no candidate source produced an accepted file.
	ErrAllSourcesFailed = errors.New("all download attempts failed")
	// ErrHTMLPayload marks a source that served an HTML page instead of a model.
	ErrHTMLPayload = errors.New("downloaded file is HTML")
)
