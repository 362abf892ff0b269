package consumer

import (
	"io"

	"github.com/replicate/modelget/pkg/extract"
	"github.com/replicate/modelget/pkg/logging"
)

// Decompressor inflates compressed payloads before handing them to Next. Uncompressed
// payloads pass through untouched.
type Decompressor struct {
	Next Consumer
}

var _ Consumer = &Decompressor{}

func (d *Decompressor) Consume(reader io.Reader, destPath string) (int64, error) {
	inflated, format, err := extract.Decompress(reader)
	if err != nil {
		return 0, err
	}
	if format != extract.FormatNone {
		logger := logging.GetLogger()
		logger.Info().Str("dest", destPath).Str("format", format).Msg("Decompressing")
	}
	return d.Next.Consume(inflated, destPath)
}

func (d *Decompressor) EnableOverwrite() {
	d.Next.EnableOverwrite()
}
