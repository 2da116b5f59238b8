// Package iohelper bounds how much of a response body or report file is
// buffered in memory.
package iohelper

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// LargeMaxBodySize caps scan reports and rendered exports (32MB)
	LargeMaxBodySize int64 = 32 * 1024 * 1024

	// drainLimit is how much of an unread body is discarded for keep-alive
	drainLimit int64 = 64 * 1024
)

// ErrBodyTooLarge is returned when a reader or file holds more than the
// allowed number of bytes.
var ErrBodyTooLarge = errors.New("iohelper: body exceeds size limit")

// ReadBodyStrict reads at most maxSize bytes and fails with ErrBodyTooLarge
// instead of truncating. A nil reader yields an empty slice.
func ReadBodyStrict(r io.Reader, maxSize int64) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}

// ReadFileStrict is ReadBodyStrict for a file on disk.
func ReadFileStrict(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ReadBodyStrict(f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// DrainAndClose discards what is left of r, up to 64KB, and closes it when it
// is a ReadCloser so the connection can be reused. It always returns nil to
// allow use in defer.
func DrainAndClose(r io.Reader) error {
	if r == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(r, drainLimit))
	if rc, ok := r.(io.ReadCloser); ok {
		rc.Close()
	}
	return nil
}
