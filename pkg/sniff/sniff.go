// Package sniff classifies downloaded model files by their first bytes.
package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the number of leading bytes inspected.
const HeaderSize = 20

type Verdict int

const (
	// Unknown means neither an HTML marker nor the signature was found. The file is kept.
	Unknown Verdict = iota
	// HTML means the payload is an error or landing page instead of a model.
	HTML
	// Signature means the payload carries the TFLite file identifier.
	Signature
)

func (v Verdict) String() string {
	switch v {
	case HTML:
		return "html"
	case Signature:
		return "tflite"
	default:
		return "unknown"
	}
}

var (
	htmlMarkers = [][]byte{[]byte("<!DOCTYPE"), []byte("<html")}

	// TFLiteSignature is the FlatBuffers file identifier of a TFLite model.
	TFLiteSignature = []byte("TFL3")

	// signatureOffsets lists where the signature may sit: a FlatBuffers identifier lives
	// after the 4-byte root offset, but some tools emit it as a bare prefix.
	signatureOffsets = []int{0, 4}
)

// Classify inspects a file header. HTML markers take precedence over the signature.
func Classify(header []byte) Verdict {
	if len(header) > HeaderSize {
		header = header[:HeaderSize]
	}
	for _, marker := range htmlMarkers {
		if bytes.Contains(header, marker) {
			return HTML
		}
	}
	for _, offset := range signatureOffsets {
		end := offset + len(TFLiteSignature)
		if len(header) >= end && bytes.Equal(header[offset:end], TFLiteSignature) {
			return Signature
		}
	}
	return Unknown
}

// File reads the header of the file at path and classifies it.
func File(path string) (Verdict, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Unknown, fmt.Errorf("error reading header of %s: %w", path, err)
	}
	return Classify(header[:n]), nil
}
