package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicate/modelget/pkg/catalog"
)

func TestAllEntriesValid(t *testing.T) {
	all := catalog.All()
	require.Len(t, all, 4)
	for _, entry := range all {
		assert.NoError(t, entry.Validate(), entry.Name)
	}
	assert.Equal(t, catalog.EmotionTFLite, all[0].Name)
	assert.Equal(t, catalog.AgeGenderTFLite, all[3].Name)
}

func TestONNXBundleOrder(t *testing.T) {
	names := make([]string, 0, len(catalog.ONNX))
	for _, entry := range catalog.ONNX {
		assert.Len(t, entry.URLs, 1)
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{catalog.FaceDetectionONNX, catalog.EmotionONNX}, names)
}

func TestLookup(t *testing.T) {
	entry, err := catalog.Lookup(catalog.AgeGenderTFLite)
	require.NoError(t, err)
	assert.Len(t, entry.URLs, 2)

	_, err = catalog.Lookup("missing.onnx")
	assert.ErrorIs(t, err, catalog.ErrUnknownEntry)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		entry catalog.Entry
		err   error
	}{
		{"valid", catalog.Entry{Name: "model.onnx", URLs: []string{"https://example.com/model.onnx"}}, nil},
		{"empty name", catalog.Entry{URLs: []string{"https://example.com/model.onnx"}}, catalog.ErrInvalidName},
		{"path traversal", catalog.Entry{Name: "../model.onnx", URLs: []string{"https://example.com/model.onnx"}}, catalog.ErrInvalidName},
		{"nested path", catalog.Entry{Name: "sub/model.onnx", URLs: []string{"https://example.com/model.onnx"}}, catalog.ErrInvalidName},
		{"dot dot", catalog.Entry{Name: "..", URLs: []string{"https://example.com/model.onnx"}}, catalog.ErrInvalidName},
		{"no sources", catalog.Entry{Name: "model.onnx"}, catalog.ErrNoSources},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestWithSources(t *testing.T) {
	overrides := map[string][]string{
		catalog.EmotionONNX: {"https://mirror.example.com/emotion.onnx"},
		"unrelated.onnx":    {"https://mirror.example.com/unrelated.onnx"},
	}
	bundle := catalog.ONNX.WithSources(overrides)

	require.Len(t, bundle, 2)
	assert.Equal(t, catalog.ONNX[0].URLs, bundle[0].URLs)
	assert.Equal(t, []string{"https://mirror.example.com/emotion.onnx"}, bundle[1].URLs)
	// the built-in catalog is left untouched
	assert.NotEqual(t, bundle[1].URLs, catalog.ONNX[1].URLs)
}
