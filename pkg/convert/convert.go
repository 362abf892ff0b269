package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/replicate/modelget/pkg/logging"
	"github.com/replicate/modelget/pkg/tflite"
)

// DefaultOpset is the ONNX opset models are converted to unless told otherwise.
const DefaultOpset = 13

var ErrNoInputs = errors.New("model declares no input tensors")

// FileInspector reads TFLite models from disk.
type FileInspector struct{}

var _ Inspector = FileInspector{}

func (FileInspector) Inspect(path string) (tflite.ModelInfo, error) {
	return tflite.ReadFile(path)
}

// Runner prints a model's tensor shapes and converts it.
type Runner struct {
	Inspector Inspector
	Converter Converter
	// Out receives the diagnostic lines. Defaults to os.Stdout.
	Out io.Writer
}

func (r *Runner) Run(ctx context.Context, input, output string, opset int) error {
	logger := logging.GetLogger()
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	if opset <= 0 {
		return fmt.Errorf("invalid opset %d", opset)
	}

	info, err := r.Inspector.Inspect(input)
	if err != nil {
		return fmt.Errorf("error loading model: %w", err)
	}
	if len(info.Inputs) == 0 {
		return fmt.Errorf("%s: %w", input, ErrNoInputs)
	}
	logger.Debug().
		Str("input", input).
		Uint32("schema_version", info.Version).
		Str("description", info.Description).
		Int("inputs", len(info.Inputs)).
		Int("outputs", len(info.Outputs)).
		Msg("Model loaded")

	fmt.Fprintf(out, "Input shape: %v\n", info.Inputs[0].Shape)
	fmt.Fprintf(out, "Output details: %s\n", tflite.FormatTensors(info.Outputs))

	if err := r.Converter.Convert(ctx, input, output, opset); err != nil {
		return fmt.Errorf("error converting %s: %w", input, err)
	}

	if stat, err := os.Stat(output); err == nil {
		logger.Info().
			Str("output", output).
			Int("opset", opset).
			Str("size", humanize.Bytes(uint64(stat.Size()))).
			Msg("Complete")
	}
	fmt.Fprintf(out, "Converted %s -> %s\n", input, output)
	return nil
}
