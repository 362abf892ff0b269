package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/replicate/modelget/pkg/cli"
	"github.com/replicate/modelget/pkg/config"
)

const rootLongDesc = `
modelget

modelget fetches the pretrained models the face analysis pipeline depends on and writes them into a local models
directory (assets/models by default, created when missing).

Three download modes mirror how the models are hosted:

  fetch     a single file from a single URL
  bundle    a fixed set of files, one URL each, downloaded in order
  fallback  a single file from an ordered list of mirrors; a mirror serving an HTML page instead of a model is
            discarded and the next one is tried, a file carrying the TFLite signature is accepted immediately

'convert' turns a TFLite model into ONNX by way of tf2onnx, printing the model's tensor shapes first.

Every command exits with a non-zero status when it fails.
`

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modelget",
		Short: "download and convert face analysis models",
		Long:  rootLongDesc,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.PersistentStartupProcessFlags()
		},
		SilenceErrors: true,
		Example: `  modelget bundle
  modelget fallback --models-dir assets/models
  modelget convert --opset 13`,
	}
	cmd.SetUsageTemplate(cli.UsageTemplate)
	err := config.AddRootPersistentFlags(cmd)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return cmd
}
