package tflite

import "errors"

var (
	ErrNotTFLite   = errors.New("tflite: missing TFL3 file identifier")
	ErrNoSubgraphs = errors.New("tflite: model has no subgraphs")
	ErrMalformed   = errors.New("tflite: malformed model")
)
