package convert

import (
	"context"

	"github.com/replicate/modelget/pkg/tflite"
)

// Inspector loads a model and describes its input and output tensors.
type Inspector interface {
	Inspect(path string) (tflite.ModelInfo, error)
}

// Converter writes an equivalent model in another format at output. On success a file
// exists at output.
type Converter interface {
	Convert(ctx context.Context, input, output string, opset int) error
}
