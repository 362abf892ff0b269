package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	modelget "github.com/replicate/modelget/pkg"
	"github.com/replicate/modelget/pkg/client"
	"github.com/replicate/modelget/pkg/consumer"
	"github.com/replicate/modelget/pkg/download"
	"github.com/replicate/modelget/pkg/optname"
)

// NewGetter assembles a Getter from the bound flags and environment.
func NewGetter() (*modelget.Getter, error) {
	var maxSize uint64
	if limit := viper.GetString(optname.MaxSize); limit != "" {
		var err error
		if maxSize, err = humanize.ParseBytes(limit); err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", optname.MaxSize, err)
		}
	}
	downloadOpts := download.Options{
		MaxSize: int64(maxSize),
		Client: client.Options{
			ConnectTimeout: viper.GetDuration(optname.ConnTimeout),
		},
	}

	var writer consumer.Consumer = &consumer.FileWriter{}
	if viper.GetBool(optname.Decompress) {
		writer = &consumer.Decompressor{Next: writer}
	}
	if viper.GetBool(optname.Force) {
		writer.EnableOverwrite()
	}

	return &modelget.Getter{
		Downloader: download.GetStreamMode(downloadOpts),
		Consumer:   writer,
		Options: modelget.Options{
			Placeholder: viper.GetBool(optname.Placeholder),
		},
	}, nil
}
