package tflite

import (
	"os"
	"path/filepath"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTensor struct {
	name  string
	shape []int32
	typ   TensorType
}

// buildModel serializes a single-subgraph model with the given tensors; inputs and outputs
// are indices into tensors.
func buildModel(tensors []testTensor, inputs, outputs []int32) []byte {
	b := flatbuffers.NewBuilder(256)

	int32Vec := func(values []int32) flatbuffers.UOffsetT {
		b.StartVector(flatbuffers.SizeInt32, len(values), flatbuffers.SizeInt32)
		for i := len(values) - 1; i >= 0; i-- {
			b.PrependInt32(values[i])
		}
		return b.EndVector(len(values))
	}

	tensorOffsets := make([]flatbuffers.UOffsetT, len(tensors))
	for i, t := range tensors {
		name := b.CreateString(t.name)
		shape := int32Vec(t.shape)
		b.StartObject(8)
		b.PrependUOffsetTSlot(0, shape, 0)
		b.PrependInt8Slot(1, int8(t.typ), 0)
		b.PrependUOffsetTSlot(3, name, 0)
		tensorOffsets[i] = b.EndObject()
	}
	b.StartVector(flatbuffers.SizeUOffsetT, len(tensorOffsets), flatbuffers.SizeUOffsetT)
	for i := len(tensorOffsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(tensorOffsets[i])
	}
	tensorVec := b.EndVector(len(tensorOffsets))
	inputVec := int32Vec(inputs)
	outputVec := int32Vec(outputs)
	sgName := b.CreateString("main")

	b.StartObject(5)
	b.PrependUOffsetTSlot(0, tensorVec, 0)
	b.PrependUOffsetTSlot(1, inputVec, 0)
	b.PrependUOffsetTSlot(2, outputVec, 0)
	b.PrependUOffsetTSlot(4, sgName, 0)
	sg := b.EndObject()

	b.StartVector(flatbuffers.SizeUOffsetT, 1, flatbuffers.SizeUOffsetT)
	b.PrependUOffsetT(sg)
	subgraphs := b.EndVector(1)
	description := b.CreateString("MLIR Converted.")

	b.StartObject(8)
	b.PrependUint32Slot(0, 3, 0)
	b.PrependUOffsetTSlot(2, subgraphs, 0)
	b.PrependUOffsetTSlot(3, description, 0)
	root := b.EndObject()
	b.FinishWithFileIdentifier(root, []byte(FileIdentifier))
	return b.FinishedBytes()
}

func ageGenderModel() []byte {
	return buildModel([]testTensor{
		{name: "input_1", shape: []int32{1, 224, 224, 3}, typ: Uint8},
		{name: "conv", shape: []int32{1, 112, 112, 32}, typ: Uint8},
		{name: "age", shape: []int32{1, 1}, typ: Float32},
		{name: "gender", shape: []int32{1, 2}, typ: Float32},
	}, []int32{0}, []int32{2, 3})
}

func TestParse(t *testing.T) {
	info, err := Parse(ageGenderModel())
	require.NoError(t, err)

	assert.Equal(t, uint32(3), info.Version)
	assert.Equal(t, "MLIR Converted.", info.Description)
	assert.Equal(t, "main", info.Subgraph)
	assert.Equal(t, []TensorInfo{
		{Name: "input_1", Shape: []int32{1, 224, 224, 3}, Type: Uint8},
	}, info.Inputs)
	assert.Equal(t, []TensorInfo{
		{Name: "age", Shape: []int32{1, 1}, Type: Float32},
		{Name: "gender", Shape: []int32{1, 2}, Type: Float32},
	}, info.Outputs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		err  error
	}{
		{"empty", nil, ErrNotTFLite},
		{"html", []byte("<!DOCTYPE html><html>"), ErrNotTFLite},
		{"identifier without tables", []byte{0xff, 0xff, 0x00, 0x00, 'T', 'F', 'L', '3'}, ErrMalformed},
		{"bad tensor index", buildModel([]testTensor{{name: "x", shape: []int32{1}}}, []int32{0}, []int32{4}), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.buf)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "age_gender_ethnicity.tflite")
	require.NoError(t, os.WriteFile(path, ageGenderModel(), 0644))

	info, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, info.Inputs, 1)
	assert.Equal(t, []int32{1, 224, 224, 3}, info.Inputs[0].Shape)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.tflite"))
	assert.Error(t, err)
}

func TestFormatTensors(t *testing.T) {
	tensors := []TensorInfo{
		{Name: "age", Shape: []int32{1, 1}},
		{Name: "gender", Shape: []int32{1, 2}},
	}
	assert.Equal(t, "[(age, [1 1]), (gender, [1 2])]", FormatTensors(tensors))
	assert.Equal(t, "[]", FormatTensors(nil))
}

func TestTensorTypeString(t *testing.T) {
	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, "int8", Int8.String())
	assert.Equal(t, "unknown(99)", TensorType(99).String())
}
