// Package tflite reads the signature of a TFLite model: the name, shape and element type
// of the tensors the main subgraph consumes and produces. Nothing is executed.
package tflite

import (
	"fmt"
	"os"
	"strings"
)

// FileIdentifier is the FlatBuffers file identifier of TFLite models, stored at offset 4.
const FileIdentifier = "TFL3"

const minModelSize = 8

type TensorType int8

const (
	Float32 TensorType = iota
	Float16
	Int32
	Uint8
	Int64
	String
	Bool
	Int16
	Complex64
	Int8
	Float64
	Complex128
	Uint64
	Resource
	Variant
	Uint32
	Uint16
	Int4
)

var tensorTypeNames = map[TensorType]string{
	Float32:    "float32",
	Float16:    "float16",
	Int32:      "int32",
	Uint8:      "uint8",
	Int64:      "int64",
	String:     "string",
	Bool:       "bool",
	Int16:      "int16",
	Complex64:  "complex64",
	Int8:       "int8",
	Float64:    "float64",
	Complex128: "complex128",
	Uint64:     "uint64",
	Resource:   "resource",
	Variant:    "variant",
	Uint32:     "uint32",
	Uint16:     "uint16",
	Int4:       "int4",
}

func (t TensorType) String() string {
	if name, ok := tensorTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int8(t))
}

type TensorInfo struct {
	Name  string
	Shape []int32
	Type  TensorType
}

func (t TensorInfo) String() string {
	return fmt.Sprintf("(%s, %v)", t.Name, t.Shape)
}

type ModelInfo struct {
	Version     uint32
	Description string
	Subgraph    string
	Inputs      []TensorInfo
	Outputs     []TensorInfo
}

// FormatTensors renders tensors the way the conversion diagnostics print them.
func FormatTensors(tensors []TensorInfo) string {
	parts := make([]string, 0, len(tensors))
	for _, t := range tensors {
		parts = append(parts, t.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ReadFile parses the TFLite model stored at path.
func ReadFile(path string) (ModelInfo, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("error reading model %s: %w", path, err)
	}
	info, err := Parse(buf)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Parse describes the first subgraph of a serialized TFLite model.
func Parse(buf []byte) (info ModelInfo, err error) {
	if len(buf) < minModelSize || string(buf[4:8]) != FileIdentifier {
		return ModelInfo{}, ErrNotTFLite
	}
	// offsets come straight from the file; a corrupt table shows up as an out of range read
	defer func() {
		if r := recover(); r != nil {
			info = ModelInfo{}
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	m := rootAsModel(buf)
	if m.subgraphsLength() == 0 {
		return ModelInfo{}, ErrNoSubgraphs
	}
	sg := m.subgraph(0)

	tensors := sg.tensorsLength()
	describe := func(indices []int32) ([]TensorInfo, error) {
		out := make([]TensorInfo, 0, len(indices))
		for _, idx := range indices {
			if idx < 0 || int(idx) >= tensors {
				return nil, fmt.Errorf("%w: tensor index %d out of range (%d tensors)", ErrMalformed, idx, tensors)
			}
			t := sg.tensor(int(idx))
			out = append(out, TensorInfo{Name: t.name(), Shape: t.shape(), Type: t.tensorType()})
		}
		return out, nil
	}

	info = ModelInfo{
		Version:     m.version(),
		Description: m.description(),
		Subgraph:    sg.name(),
	}
	if info.Inputs, err = describe(sg.inputs()); err != nil {
		return ModelInfo{}, err
	}
	if info.Outputs, err = describe(sg.outputs()); err != nil {
		return ModelInfo{}, err
	}
	return info, nil
}
