package fallback

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
'fallback' downloads a single model from an ordered list of mirrors, stopping at the first acceptable copy.

After each download the first bytes of the file are inspected:

  - an HTML page (an error or landing page served instead of the model) is deleted and the next mirror is tried
  - a file carrying the TFLite signature is accepted immediately
  - anything else is kept with a warning

A mirror that cannot be reached is skipped. Each mirror is tried once. When every mirror fails no file is left behind
and the command exits non-zero.

Without arguments the age/gender/ethnicity model is fetched from its known mirrors.
`

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fallback [flags] [<name> <url>...]",
		Short:   "download one model from the first working mirror",
		Long:    longDesc,
		Args:    nameAndURLs,
		PreRunE: config.BindCommandFlags,
		RunE:    runFallbackCMD,
		Example: `  modelget fallback
  modelget fallback age_gender.tflite https://mirror-a.example.com/age_gender.tflite https://mirror-b.example.com/age_gender.tflite`,
	}
	config.AddDownloadFlags(cmd)
	cmd.SetUsageTemplate(cli.UsageTemplate)
	return cmd
}

func nameAndURLs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return cobra.MinimumNArgs(2)(cmd, args)
}

func runFallbackCMD(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	logger := logging.GetLogger()

	entry := catalog.AgeGender.WithSources(config.SourceOverrides())
	if len(args) > 0 {
		entry = catalog.Entry{Name: args[0], URLs: args[1:]}
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
	result, err := getter.FetchFirst(cmd.Context(), dir, entry)
	if err != nil {
		return err
	}
	logger.Info().
		Str("dest", result.Dest).
		Str("url", result.URL).
		Str("format", result.Verdict.String()).
		Msg("Model download complete")
	if result.URL != entry.URLs[0] {
		logger.Warn().
			Str("preferred_url", entry.URLs[0]).
			Msg("Model came from a fallback mirror and may have a different output format, check the prediction parsing")
	}
	return nil
}
