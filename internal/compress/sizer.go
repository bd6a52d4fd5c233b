// Package compress measures how large a bundle would be under the standard
// transfer encodings, for build reports that carry the compiled text but no
// compressed sizes of their own.
package compress

import (
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// Algorithm names used as keys in compressed-size maps.
const (
	AlgoGzip   = "gzip"
	AlgoBrotli = "brotli"
)

// countingWriter discards the compressed stream and keeps only its length.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// Sizes compresses data once per supported algorithm and returns the
// resulting byte counts.
func Sizes(data []byte) (map[string]int64, error) {
	gz, err := gzipSize(data)
	if err != nil {
		return nil, fmt.Errorf("gzip size: %w", err)
	}
	br, err := brotliSize(data)
	if err != nil {
		return nil, fmt.Errorf("brotli size: %w", err)
	}
	return map[string]int64{AlgoGzip: gz, AlgoBrotli: br}, nil
}

func gzipSize(data []byte) (int64, error) {
	var cw countingWriter
	w, err := gzip.NewWriterLevel(&cw, gzip.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

func brotliSize(data []byte) (int64, error) {
	var cw countingWriter
	w := brotli.NewWriterLevel(&cw, brotli.DefaultCompression)
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}
