package fetch

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/replicate/modelget/pkg/catalog"
	"github.com/replicate/modelget/pkg/cli"
	"github.com/replicate/modelget/pkg/config"
	"github.com/replicate/modelget/pkg/logging"
	"github.com/replicate/modelget/pkg/optname"
)

const longDesc = `
'fetch' downloads a single file from a single URL into the models directory.

Without arguments the emotion classifier (emotion.tflite) is fetched. A single argument names a built-in model (see
'modelget list'), fetched from its first source. With two arguments the file at <url> is saved as <name>.

If the download fails the command exits non-zero. With '--placeholder' an empty file is written at the destination
instead and the command succeeds, so that later steps expecting the file can still run.
`

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fetch [flags] [<catalog-name> | <url> <name>]",
		Short:   "download one model from one URL",
		Long:    longDesc,
		Args:    cobra.RangeArgs(0, 2),
		PreRunE: config.BindCommandFlags,
		RunE:    runFetchCMD,
		Example: `  modelget fetch
  modelget fetch --placeholder
  modelget fetch face_detection.onnx
  modelget fetch https://example.com/models/landmarks.tflite landmarks.tflite`,
	}
	config.AddDownloadFlags(cmd)
	cmd.Flags().Bool(optname.Placeholder, false, "Write an empty placeholder file instead of failing when the download fails")
	cmd.SetUsageTemplate(cli.UsageTemplate)
	return cmd
}

func runFetchCMD(cmd *cobra.Command, args []string) error {
	// After we run through the PreRun functions we want to silence usage from being printed
	// on all errors
	cmd.SilenceUsage = true
	logger := logging.GetLogger()

	entry := catalog.Emotion
	switch len(args) {
	case 1:
		var err error
		if entry, err = catalog.Lookup(args[0]); err != nil {
			return err
		}
	case 2:
		entry = catalog.Entry{Name: args[1], URLs: []string{args[0]}}
	}
	if len(args) < 2 {
		entry = entry.WithSources(config.SourceOverrides())
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	dir := viper.GetString(optname.ModelsDir)
	if err := cli.EnsureDestinationsNotExist(dir, entry.Name); err != nil {
		return err
	}

	getter, err := cli.NewGetter()
	if err != nil {
		return err
	}
	result, err := getter.FetchOne(cmd.Context(), dir, entry)
	if err != nil {
		return err
	}
	logger.Info().Str("dest", result.Dest).Bool("placeholder", result.Placeholder).Msg("Saved")
	return nil
}
