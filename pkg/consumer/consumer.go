package consumer

import "io"

// Consumer stores a downloaded stream at destPath and reports how many bytes were written.
// A Consumer that fails must not leave a partial file behind.
type Consumer interface {
	Consume(reader io.Reader, destPath string) (int64, error)
	// EnableOverwrite allows the consumer to replace an existing file at destPath
	EnableOverwrite()
}
