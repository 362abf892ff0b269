package extract

import (
	"bytes"
	"errors"
	"io"
)

var _ io.Reader = &peekReader{}

// peekReader lets the magic number of a stream be inspected without consuming it: peeked
// bytes are replayed by Read before the underlying reader is touched again.
type peekReader struct {
	reader io.Reader
	buffer *bytes.Buffer
}

func (p *peekReader) Read(b []byte) (int, error) {
	if p.buffer != nil && p.buffer.Len() > 0 {
		n, err := p.buffer.Read(b)
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return n, err
	}
	return p.reader.Read(b)
}

// Peek reads up to n further bytes into the replay buffer and returns everything buffered so
// far. A short stream returns the available bytes together with io.EOF.
func (p *peekReader) Peek(n int) ([]byte, error) {
	if p.buffer == nil {
		p.buffer = bytes.NewBuffer(make([]byte, 0, n))
	}
	_, err := io.CopyN(p.buffer, p.reader, int64(n))
	return p.buffer.Bytes(), err
}
