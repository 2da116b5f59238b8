package iohelper

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadBodyStrict_UnderLimit(t *testing.T) {
	body, err := ReadBodyStrict(strings.NewReader(`{"totalFiles":3}`), 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"totalFiles":3}` {
		t.Errorf("body = %q", body)
	}
}

func TestReadBodyStrict_ExactLimit(t *testing.T) {
	body, err := ReadBodyStrict(strings.NewReader("12345"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) != 5 {
		t.Errorf("len = %d, want 5", len(body))
	}
}

func TestReadBodyStrict_OverLimit(t *testing.T) {
	_, err := ReadBodyStrict(strings.NewReader("123456"), 5)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("err = %v, want ErrBodyTooLarge", err)
	}
}

func TestReadBodyStrict_NilReader(t *testing.T) {
	body, err := ReadBodyStrict(nil, 5)
	if err != nil || len(body) != 0 {
		t.Errorf("got %q, %v; want empty, nil", body, err)
	}
}

func TestReadFileStrict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, []byte(`{"violations":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFileStrict(path, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"violations":[]}` {
		t.Errorf("data = %q", data)
	}

	_, err = ReadFileStrict(path, 4)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("err = %v, want ErrBodyTooLarge", err)
	}
	if err != nil && !strings.Contains(err.Error(), "report.json") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestReadFileStrict_Missing(t *testing.T) {
	_, err := ReadFileStrict(filepath.Join(t.TempDir(), "nope.json"), 10)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestDrainAndClose_NilReader(t *testing.T) {
	if err := DrainAndClose(nil); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestDrainAndClose_Drains(t *testing.T) {
	r := bytes.NewReader(make([]byte, 1024))
	_ = DrainAndClose(r)
	if r.Len() != 0 {
		t.Errorf("%d bytes left unread", r.Len())
	}
}

func TestDrainAndClose_StopsAtLimit(t *testing.T) {
	r := bytes.NewReader(make([]byte, drainLimit+10))
	_ = DrainAndClose(r)
	if r.Len() != 10 {
		t.Errorf("%d bytes left, want 10", r.Len())
	}
}

type closeTracker struct {
	*strings.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestDrainAndClose_ClosesReadCloser(t *testing.T) {
	rc := &closeTracker{Reader: strings.NewReader("rest of body")}
	_ = DrainAndClose(rc)
	if !rc.closed {
		t.Error("Close was not called")
	}
}
