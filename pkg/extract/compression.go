package extract

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/lzw"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"

	"github.com/replicate/modelget/pkg/logging"
)

const (
	peekSize = 8

	FormatNone = "none"
)

var (
	gzipMagic = []byte{0x1F, 0x8B}
	bzipMagic = []byte{0x42, 0x5A}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	lzwMagic  = []byte{0x1F, 0x9D}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

var _ decompressor = gzipDecompressor{}
var _ decompressor = bzip2Decompressor{}
var _ decompressor = xzDecompressor{}
var _ decompressor = lzwDecompressor{}
var _ decompressor = lz4Decompressor{}

// decompressor represents different compression formats.
type decompressor interface {
	decompress(r io.Reader) (io.Reader, error)
	format() string
}

// Decompress sniffs the compression format of r from its magic number and returns a reader
// producing the decompressed stream together with the detected format name. Streams that
// are not compressed are returned unchanged with FormatNone.
func Decompress(r io.Reader) (io.Reader, string, error) {
	p := &peekReader{reader: r}
	header, err := p.Peek(peekSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("error reading stream header: %w", err)
	}
	d := detectFormat(header)
	if d == nil {
		return p, FormatNone, nil
	}
	out, err := d.decompress(p)
	if err != nil {
		return nil, d.format(), fmt.Errorf("error opening %s stream: %w", d.format(), err)
	}
	return out, d.format(), nil
}

// detectFormat returns the appropriate decompressor according to the magic number.
func detectFormat(input []byte) decompressor {
	log := logging.GetLogger()
	inputSize := len(input)

	if inputSize < 2 {
		return nil
	}
	// pad to 8 bytes
	if inputSize < peekSize {
		input = append(input, make([]byte, peekSize-inputSize)...)
	}

	var d decompressor
	switch {
	case bytes.HasPrefix(input, gzipMagic):
		d = gzipDecompressor{}
	case bytes.HasPrefix(input, bzipMagic):
		d = bzip2Decompressor{}
	case bytes.HasPrefix(input, lzwMagic):
		// the high order 3 bits of byte[2] carry the litWidth, which is at least 9
		litWidth := int(input[2]>>5) + 9
		d = lzwDecompressor{order: lzw.MSB, litWidth: litWidth}
	case bytes.HasPrefix(input, lz4Magic):
		d = lz4Decompressor{}
	case bytes.HasPrefix(input, xzMagic):
		d = xzDecompressor{}
	default:
		log.Debug().Str("type", FormatNone).Msg("Compression Format")
		return nil
	}
	log.Debug().Str("type", d.format()).Msg("Compression Format")
	return d
}

type gzipDecompressor struct{}

func (gzipDecompressor) decompress(r io.Reader) (io.Reader, error) {
	return gzip.NewReader(r)
}

func (gzipDecompressor) format() string { return "gzip" }

type bzip2Decompressor struct{}

func (bzip2Decompressor) decompress(r io.Reader) (io.Reader, error) {
	return bzip2.NewReader(r), nil
}

func (bzip2Decompressor) format() string { return "bzip2" }

type xzDecompressor struct{}

func (xzDecompressor) decompress(r io.Reader) (io.Reader, error) {
	return xz.NewReader(r)
}

func (xzDecompressor) format() string { return "xz" }

type lzwDecompressor struct {
	litWidth int
	order    lzw.Order
}

func (d lzwDecompressor) decompress(r io.Reader) (io.Reader, error) {
	return lzw.NewReader(r, d.order, d.litWidth), nil
}

func (lzwDecompressor) format() string { return "lzw" }

type lz4Decompressor struct{}

func (lz4Decompressor) decompress(r io.Reader) (io.Reader, error) {
	return lz4.NewReader(r), nil
}

func (lz4Decompressor) format() string { return "lz4" }
