package consumer

import (
	"errors"
	"fmt"
	"io"
	"os"
)

type FileWriter struct {
	Overwrite bool
}

var _ Consumer = &FileWriter{}

func (f *FileWriter) Consume(reader io.Reader, destPath string) (int64, error) {
	openFlags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if f.Overwrite {
		openFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(destPath, openFlags, 0644)
	if err != nil {
		return 0, fmt.Errorf("error writing file: %w", err)
	}

	written, copyErr := io.Copy(out, reader)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(destPath)
		return written, fmt.Errorf("error writing file: %w", err)
	}
	return written, nil
}

func (f *FileWriter) EnableOverwrite() {
	f.Overwrite = true
}
