package download

import (
	"github.com/replicate/modelget/pkg/client"
)

type Options struct {
	// MaxSize rejects responses announcing (or streaming) more bytes than this. Zero
	// disables the limit.
	MaxSize int64
	Client  client.Options
}
