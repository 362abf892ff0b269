package download

import (
	"context"
	"io"
)

// Strategy opens the body of a remote file. The caller must close the returned reader.
// fileSize is -1 when the server does not announce a length.
type Strategy interface {
	Fetch(ctx context.Context, url string) (result io.ReadCloser, fileSize int64, err error)
}
