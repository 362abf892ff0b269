package bundle

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/replicate/modelget/pkg/catalog"
	"github.com/replicate/modelget/pkg/cli"
	"github.com/replicate/modelget/pkg/config"
	"github.com/replicate/modelget/pkg/logging"
	"github.com/replicate/modelget/pkg/optname"
)

const longDesc = `
'bundle' downloads a fixed set of models, one URL per file, one after the other in the order they are listed.

Without arguments the ONNX face detection and emotion models are fetched. A manifest file (or '-' for stdin) may be
given instead; each line holds a URL and the file name to save it as, separated by whitespace.

Every file is requested exactly once. The first failure stops the run and the command exits non-zero.
`

const bundleExamples = `
  modelget bundle

  modelget bundle manifest.txt

  cat manifest.txt | modelget bundle -
`

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bundle [flags] [<manifest-file>]",
		Short:   "download a fixed set of models in order",
		Long:    longDesc,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: config.BindCommandFlags,
		RunE:    runBundleCMD,
		Example: bundleExamples,
	}
	config.AddDownloadFlags(cmd)
	cmd.SetUsageTemplate(cli.UsageTemplate)
	return cmd
}

func runBundleCMD(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	logger := logging.GetLogger()

	bundle := catalog.ONNX.WithSources(config.SourceOverrides())
	if len(args) == 1 {
		file, err := manifestFile(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		if bundle, err = parseManifest(file); err != nil {
			return fmt.Errorf("error processing manifest file %s: %w", args[0], err)
		}
	}
	if len(bundle) == 0 {
		return fmt.Errorf("nothing to download")
	}

	dir := viper.GetString(optname.ModelsDir)
	names := make([]string, 0, len(bundle))
	for _, entry := range bundle {
		names = append(names, entry.Name)
	}
	if err := cli.EnsureDestinationsNotExist(dir, names...); err != nil {
		return err
	}

	getter, err := cli.NewGetter()
	if err != nil {
		return err
	}
	results, err := getter.FetchAll(cmd.Context(), dir, bundle)
	if err != nil {
		return err
	}
	logger.Info().Int("file_count", len(results)).Str("dir", dir).Msg("All models downloaded")
	return nil
}
