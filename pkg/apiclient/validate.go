package apiclient

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
)

// Upload is a file to send to the service.
type Upload struct {
	Name string
	Data []byte
}

// ValidateRepoPath rejects an empty or blank repository path.
func ValidateRepoPath(repoPath string) error {
	if strings.TrimSpace(repoPath) == "" {
		return &ValidationError{Field: "repoPath", Reason: "repository path is required"}
	}
	return nil
}

// ValidateUpload checks the extension (case-insensitive), that the file is
// not empty and that it fits defaults.MaxUploadSize.
func ValidateUpload(u Upload, ext string) error {
	if !strings.EqualFold(filepath.Ext(u.Name), ext) {
		return &ValidationError{Field: "file", Reason: fmt.Sprintf("%q is not a %s file", u.Name, ext)}
	}
	if len(u.Data) == 0 {
		return &ValidationError{Field: "file", Reason: fmt.Sprintf("%q is empty", u.Name)}
	}
	if int64(len(u.Data)) > defaults.MaxUploadSize {
		return tooLarge(u.Name, int64(len(u.Data)))
	}
	return nil
}

// LoadUpload reads path for upload. The extension and size are checked
// before the file is read.
func LoadUpload(path, ext string) (Upload, error) {
	name := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(name), ext) {
		return Upload{}, &ValidationError{Field: "file", Reason: fmt.Sprintf("%q is not a %s file", name, ext)}
	}
	info, err := os.Stat(path)
	if err != nil {
		return Upload{}, &ValidationError{Field: "file", Reason: err.Error()}
	}
	if info.IsDir() {
		return Upload{}, &ValidationError{Field: "file", Reason: fmt.Sprintf("%q is a directory", name)}
	}
	if info.Size() > defaults.MaxUploadSize {
		return Upload{}, tooLarge(name, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Upload{}, fmt.Errorf("read %s: %w", name, err)
	}
	u := Upload{Name: name, Data: data}
	if err := ValidateUpload(u, ext); err != nil {
		return Upload{}, err
	}
	return u, nil
}

func tooLarge(name string, size int64) error {
	return &ValidationError{
		Field:  "file",
		Reason: fmt.Sprintf("%q is %d bytes; the limit is %d MB", name, size, defaults.MaxUploadSize/(1024*1024)),
	}
}
