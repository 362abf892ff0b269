// Package catalog holds the models fetched by default and where they are hosted.
package catalog

import (
	"fmt"
	"path/filepath"
)

// Entry is a destination file name and the ordered list of sources it may be fetched from.
type Entry struct {
	Name string
	URLs []string
}

// Bundle is an ordered set of entries. Order is preserved when fetching.
type Bundle []Entry

const (
	EmotionTFLite      = "emotion.tflite"
	FaceDetectionONNX  = "face_detection.onnx"
	EmotionONNX        = "emotion.onnx"
	AgeGenderTFLite    = "age_gender_ethnicity.tflite"
	AgeGenderONNX      = "age_gender_ethnicity.onnx"
	DefaultConvertFrom = AgeGenderTFLite
	DefaultConvertTo   = AgeGenderONNX
)

var (
	Emotion = Entry{
		Name: EmotionTFLite,
		URLs: []string{"https://github.com/petercunha/Emotion/raw/master/emotion_model.tflite"},
	}

	// ONNX is fetched as a whole, one source per file.
	ONNX = Bundle{
		{
			Name: FaceDetectionONNX,
			URLs: []string{"https://github.com/onnx/models/raw/main/validated/vision/body_analysis/ultraface/models/version-RFB-640.onnx"},
		},
		{
			Name: EmotionONNX,
			URLs: []string{"https://github.com/onnx/models/raw/main/validated/vision/body_analysis/emotion_ferplus/model/emotion-ferplus-8.onnx"},
		},
	}

	// AgeGender lists its sources in order of preference.
	AgeGender = Entry{
		Name: AgeGenderTFLite,
		URLs: []string{
			"https://github.com/yakhyo/face-attributes-pytorch/releases/download/v0.0.1/age_gender.tflite",
			"https://github.com/patlevin/face-detector-lite/raw/main/fdlite/data/age_googlenet.tflite",
		},
	}
)

// All returns every built-in entry in the order they are listed.
func All() Bundle {
	all := Bundle{Emotion}
	all = append(all, ONNX...)
	return append(all, AgeGender)
}

// Lookup finds a built-in entry by file name.
func Lookup(name string) (Entry, error) {
	for _, entry := range All() {
		if entry.Name == name {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnknownEntry, name)
}

// Validate rejects entries that could write outside the models directory or have nowhere
// to be fetched from.
func (e Entry) Validate() error {
	if e.Name == "" || e.Name != filepath.Base(e.Name) || e.Name == "." || e.Name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, e.Name)
	}
	if len(e.URLs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSources, e.Name)
	}
	return nil
}

// WithSources returns a copy of e whose sources are replaced by overrides[e.Name], if set.
func (e Entry) WithSources(overrides map[string][]string) Entry {
	if urls, ok := overrides[e.Name]; ok && len(urls) > 0 {
		e.URLs = append([]string(nil), urls...)
	}
	return e
}

// WithSources applies source overrides to every entry of the bundle.
func (b Bundle) WithSources(overrides map[string][]string) Bundle {
	out := make(Bundle, 0, len(b))
	for _, entry := range b {
		out = append(out, entry.WithSources(overrides))
	}
	return out
}
