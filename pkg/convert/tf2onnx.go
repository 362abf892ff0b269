package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/replicate/modelget/pkg/logging"
)

const DefaultPython = "python3"

var ErrNoOutput = errors.New("converter finished without writing an output file")

// Tf2onnx converts TFLite models with the tf2onnx Python package.
type Tf2onnx struct {
	// Python is the interpreter with tf2onnx installed. Defaults to python3 on PATH.
	Python string
}

var _ Converter = &Tf2onnx{}

func (c *Tf2onnx) Convert(ctx context.Context, input, output string, opset int) error {
	logger := logging.GetLogger()
	python := c.Python
	if python == "" {
		python = DefaultPython
	}
	args := c.args(input, output, opset)
	logger.Debug().Str("python", python).Strs("args", args).Msg("Running converter")

	// a file left by an earlier run must not pass for this run's output
	if err := os.Remove(output); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing previous output %s: %w", output, err)
	}

	cmd := exec.CommandContext(ctx, python, args...)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error creating converter output pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error starting %s: %w", python, err)
	}

	var last string
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
			logger.Debug().Str("converter", "tf2onnx").Msg(line)
		}
	}
	// drain whatever the scanner gave up on so the process can exit
	_, _ = io.Copy(io.Discard, pipe)
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("tf2onnx failed: %w: %s", err, last)
	}
	if _, err := os.Stat(output); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoOutput, output)
	}
	return nil
}

func (c *Tf2onnx) args(input, output string, opset int) []string {
	return []string{
		"-m", "tf2onnx.convert",
		"--tflite", input,
		"--output", output,
		"--opset", strconv.Itoa(opset),
	}
}
