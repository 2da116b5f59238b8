package defaults_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// TestVersionConsistency ensures all version references match defaults.Version
func TestVersionConsistency(t *testing.T) {
	if ui.Version != defaults.Version {
		t.Errorf("ui.Version (%s) != defaults.Version (%s)", ui.Version, defaults.Version)
	}

	semverPattern := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9]+)?$`)
	if !semverPattern.MatchString(defaults.Version) {
		t.Errorf("defaults.Version (%s) is not valid semver", defaults.Version)
	}
}

func TestUserAgent(t *testing.T) {
	t.Parallel()
	if got := defaults.UserAgent(""); got != "sqlaudit/"+defaults.Version {
		t.Errorf("UserAgent(\"\") = %q", got)
	}
	got := defaults.UserAgent("export")
	if !strings.HasSuffix(got, "(export)") {
		t.Errorf("UserAgent(export) = %q, want context suffix", got)
	}
}

func TestUploadLimit(t *testing.T) {
	t.Parallel()
	if defaults.MaxUploadSize != 10<<20 {
		t.Errorf("MaxUploadSize = %d, want 10MiB", defaults.MaxUploadSize)
	}
	if defaults.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", defaults.PageSize)
	}
}
