package convert

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/replicate/modelget/pkg/catalog"
	"github.com/replicate/modelget/pkg/cli"
	"github.com/replicate/modelget/pkg/config"
	"github.com/replicate/modelget/pkg/convert"
	"github.com/replicate/modelget/pkg/optname"
)

const longDesc = `
'convert' turns a TFLite model into an ONNX model.

The TFLite file is read first and the shapes of its input and output tensors are printed. The conversion itself is
delegated to the tf2onnx Python package, run as '<python> -m tf2onnx.convert'; '--converter-python' selects the
interpreter it is installed in.

By default <models-dir>/age_gender_ethnicity.tflite is converted to <models-dir>/age_gender_ethnicity.onnx at opset 13.
`

// newRunner is replaced in tests to avoid running python.
var newRunner = func(cmd *cobra.Command) *convert.Runner {
	return &convert.Runner{
		Inspector: convert.FileInspector{},
		Converter: &convert.Tf2onnx{Python: viper.GetString(optname.ConverterPython)},
		Out:       cmd.OutOrStdout(),
	}
}

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert [flags]",
		Short:   "convert a TFLite model to ONNX",
		Long:    longDesc,
		Args:    cobra.NoArgs,
		PreRunE: config.BindCommandFlags,
		RunE:    runConvertCMD,
		Example: `  modelget convert
  modelget convert --input assets/models/emotion.tflite --output assets/models/emotion.onnx --opset 17`,
	}
	cmd.Flags().StringP(optname.Input, "i", "", "TFLite model to convert (default <models-dir>/"+catalog.DefaultConvertFrom+")")
	cmd.Flags().StringP(optname.Output, "o", "", "ONNX file to write (default <models-dir>/"+catalog.DefaultConvertTo+")")
	cmd.Flags().Int(optname.Opset, convert.DefaultOpset, "ONNX opset to target")
	cmd.Flags().String(optname.ConverterPython, convert.DefaultPython, "Python interpreter with tf2onnx installed")
	cmd.SetUsageTemplate(cli.UsageTemplate)
	return cmd
}

func runConvertCMD(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dir := viper.GetString(optname.ModelsDir)
	input := viper.GetString(optname.Input)
	if input == "" {
		input = filepath.Join(dir, catalog.DefaultConvertFrom)
	}
	output := viper.GetString(optname.Output)
	if output == "" {
		output = filepath.Join(dir, catalog.DefaultConvertTo)
	}

	return newRunner(cmd).Run(cmd.Context(), input, output, viper.GetInt(optname.Opset))
}
