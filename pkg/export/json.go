package export

import (
	"fmt"

	"github.com/benjaminpeng/sql-audit/pkg/jsonutil"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// ToJSON serializes the report with two-space indentation. Every report
// field round-trips through model.Decode.
func ToJSON(r *model.ScanReport) (string, error) {
	data, err := jsonutil.MarshalIndent(normalized(r), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data) + "\n", nil
}
