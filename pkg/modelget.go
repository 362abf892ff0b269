package modelget

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/replicate/modelget/pkg/catalog"
	"github.com/replicate/modelget/pkg/consumer"
	"github.com/replicate/modelget/pkg/download"
	"github.com/replicate/modelget/pkg/logging"
	"github.com/replicate/modelget/pkg/sniff"
)

type Getter struct {
	Downloader download.Strategy
	Consumer   consumer.Consumer
	Options    Options
}

type Options struct {
	// Placeholder makes FetchOne write an empty file instead of failing.
	Placeholder bool
}

// Result describes the file a fetch left at Dest.
type Result struct {
	Dest        string
	URL         string
	Size        int64
	Verdict     sniff.Verdict
	Elapsed     time.Duration
	Placeholder bool
}

// DownloadFile transfers url to dest in a single attempt. On failure no partial file is left.
func (g *Getter) DownloadFile(ctx context.Context, url string, dest string) (int64, time.Duration, error) {
	if g.Consumer == nil {
		g.Consumer = &consumer.FileWriter{}
	}
	logger := logging.GetLogger()
	downloadStartTime := time.Now()

	body, _, err := g.Downloader.Fetch(ctx, url)
	if err != nil {
		return 0, 0, err
	}
	defer body.Close()

	written, err := g.Consumer.Consume(body, dest)
	if err != nil {
		return written, 0, err
	}
	elapsed := time.Since(downloadStartTime)

	throughput := humanize.Bytes(uint64(float64(written) / elapsed.Seconds()))
	logger.Info().
		Str("dest", dest).
		Str("size", humanize.Bytes(uint64(written))).
		Str("throughput", fmt.Sprintf("%s/s", throughput)).
		Str("elapsed", fmt.Sprintf("%.3fs", elapsed.Seconds())).
		Msg("Complete")
	return written, elapsed, nil
}

// FetchOne downloads the first source of entry into dir.
func (g *Getter) FetchOne(ctx context.Context, dir string, entry catalog.Entry) (Result, error) {
	logger := logging.GetLogger()
	if err := entry.Validate(); err != nil {
		return Result{}, err
	}
	dest, err := destination(dir, entry.Name)
	if err != nil {
		return Result{}, err
	}
	url := entry.URLs[0]

	logger.Info().Str("url", url).Str("dest", dest).Msg("Downloading")
	size, elapsed, err := g.DownloadFile(ctx, url, dest)
	if err == nil {
		return Result{Dest: dest, URL: url, Size: size, Elapsed: elapsed}, nil
	}
	// a file already at dest is never replaced by a placeholder
	if !g.Options.Placeholder || ctx.Err() != nil || errors.Is(err, fs.ErrExist) {
		return Result{}, fmt.Errorf("error downloading %s: %w", entry.Name, err)
	}

	logger.Warn().Err(err).Str("dest", dest).Msg("Creating placeholder model")
	if phErr := writePlaceholder(dest); phErr != nil {
		return Result{}, fmt.Errorf("error downloading %s: %w (placeholder not written: %w)", entry.Name, err, phErr)
	}
	return Result{Dest: dest, URL: url, Placeholder: true}, nil
}

func writePlaceholder(dest string) error {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// FetchAll downloads every entry of bundle in order, one attempt per entry at its first
// source. The first failure stops the run.
func (g *Getter) FetchAll(ctx context.Context, dir string, bundle catalog.Bundle) ([]Result, error) {
	logger := logging.GetLogger()
	for _, entry := range bundle {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}
	if _, err := destination(dir, ""); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(bundle))
	for _, entry := range bundle {
		dest := filepath.Join(dir, entry.Name)
		url := entry.URLs[0]
		logger.Info().Str("url", url).Str("dest", dest).Msg("Downloading")
		size, elapsed, err := g.DownloadFile(ctx, url, dest)
		if err != nil {
			return results, fmt.Errorf("error downloading %s: %w", entry.Name, err)
		}
		results = append(results, Result{Dest: dest, URL: url, Size: size, Elapsed: elapsed})
	}
	return results, nil
}

// FetchFirst tries the sources of entry in order until one is accepted. A source that
// fails to transfer or serves HTML is discarded and the next one is tried. A file carrying
// the TFLite signature is accepted immediately; a file with neither marker is kept with a
// warning. Only files written by a rejected attempt are removed: when every source is
// rejected the destination holds whatever it held before the call.
func (g *Getter) FetchFirst(ctx context.Context, dir string, entry catalog.Entry) (Result, error) {
	logger := logging.GetLogger()
	if err := entry.Validate(); err != nil {
		return Result{}, err
	}
	dest, err := destination(dir, entry.Name)
	if err != nil {
		return Result{}, err
	}

	total := len(entry.URLs)
	for i, url := range entry.URLs {
		attempt := fmt.Sprintf("%d/%d", i+1, total)
		logger.Info().Str("attempt", attempt).Str("url", url).Msg("Downloading")

		// a failed transfer leaves dest untouched, the consumer cleans up its own partial file
		size, elapsed, err := g.DownloadFile(ctx, url, dest)
		if err == nil {
			var verdict sniff.Verdict
			verdict, err = sniff.File(dest)
			if err == nil && verdict == sniff.HTML {
				err = ErrHTMLPayload
			}
			if err == nil {
				result := Result{Dest: dest, URL: url, Size: size, Verdict: verdict, Elapsed: elapsed}
				logAccepted(result)
				return result, nil
			}
			if rmErr := removeFile(dest); rmErr != nil {
				return Result{}, rmErr
			}
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		if errors.Is(err, fs.ErrExist) {
			return Result{}, fmt.Errorf("error downloading %s: %w", entry.Name, err)
		}
		logger.Warn().Err(err).Str("attempt", attempt).Str("url", url).Msg("Failed, trying next source")
	}
	return Result{}, fmt.Errorf("%w: %s (%d sources tried)", ErrAllSourcesFailed, entry.Name, total)
}

func logAccepted(result Result) {
	logger := logging.GetLogger()
	size := fmt.Sprintf("%s (%s bytes)", humanize.Bytes(uint64(result.Size)), humanize.Comma(result.Size))
	if result.Verdict == sniff.Signature {
		logger.Info().Str("dest", result.Dest).Str("size", size).Msg("Valid TFLite model downloaded")
		return
	}
	logger.Warn().Str("dest", result.Dest).Str("size", size).
		Msg("File doesn't have a TFLite header, but may still work")
}

// destination makes sure dir exists and returns the path of name inside it.
func destination(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating models directory %s: %w", dir, err)
	}
	return filepath.Join(dir, name), nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing %s: %w", path, err)
	}
	return nil
}
