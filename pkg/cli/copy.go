package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/apiclient"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// Fields accepted by CopyOptions.Field.
const (
	FieldExample    = "example"
	FieldSQL        = "sql"
	FieldMessage    = "message"
	FieldSuggestion = "suggestion"
)

// CopyOptions configures the copy command.
type CopyOptions struct {
	ReportPath string
	Selector

	// Field is what to copy; empty means FieldExample.
	Field string
}

// RunCopy puts one field of the selected violation on the clipboard.
func (r *Runner) RunCopy(ctx context.Context, opts *CopyOptions) error {
	report, err := model.Load(opts.ReportPath)
	if err != nil {
		return err
	}
	v, err := r.selectViolation(report, opts.Selector)
	if err != nil {
		return err
	}

	field := strings.ToLower(opts.Field)
	if field == "" {
		field = FieldExample
	}
	text, err := fieldText(v, field)
	if err != nil {
		return err
	}

	method, err := r.Clipboard.Copy(ctx, text)
	if err != nil {
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("Copied %s to clipboard (%s)", field, method))
	return nil
}

func fieldText(v model.Violation, field string) (string, error) {
	var text string
	switch field {
	case FieldExample:
		text = v.ExampleSQL
	case FieldSQL:
		text = v.SQLFragment.SQLText
	case FieldMessage:
		text = v.Message
	case FieldSuggestion:
		text = v.Suggestion
	default:
		return "", &apiclient.ValidationError{Field: "field", Reason: fmt.Sprintf("unknown field %q", field)}
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyField, field)
	}
	return text, nil
}
