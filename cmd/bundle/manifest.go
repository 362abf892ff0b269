package bundle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/replicate/modelget/pkg/catalog"
)

// A manifest lists one model per line, a URL followed by the file name it is saved under:
//
// https://example.com/models/version-RFB-640.onnx   face_detection.onnx
// https://example.com/models/emotion-ferplus-8.onnx emotion.onnx
//
// Blank lines and lines starting with '#' are ignored. Fields are separated by arbitrary
// whitespace. Line order is download order.

func manifestFile(manifestPath string) (io.ReadCloser, error) {
	if manifestPath == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if _, err := os.Stat(manifestPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("manifest file %s does not exist", manifestPath)
	}
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("error opening manifest file %s: %w", manifestPath, err)
	}
	return file, nil
}

func parseLine(line string) (urlString, name string, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("error parsing manifest invalid line format `%s`", line)
	}
	return fields[0], fields[1], nil
}

func checkSeenNames(names map[string]string, name string, urlString string) error {
	if seenURL, ok := names[name]; ok {
		if seenURL != urlString {
			return fmt.Errorf("duplicate name %s with different urls: %s and %s", name, seenURL, urlString)
		}
		return fmt.Errorf("duplicate entry: %s %s", urlString, name)
	}
	return nil
}

func parseManifest(file io.Reader) (catalog.Bundle, error) {
	seenNames := make(map[string]string)
	bundle := make(catalog.Bundle, 0)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urlString, name, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		if err := checkSeenNames(seenNames, name, urlString); err != nil {
			return nil, err
		}
		seenNames[name] = urlString

		entry := catalog.Entry{Name: name, URLs: []string{urlString}}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		bundle = append(bundle, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}
	return bundle, nil
}
