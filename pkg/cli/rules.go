package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/apiclient"
	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// Rule sets accepted by RulesOptions.Set.
const (
	RuleSetAll     = "all"
	RuleSetDefault = "default"
	RuleSetCustom  = "custom"
)

// RulesOptions selects which rules to list.
type RulesOptions struct {
	Set string
}

// UploadOptions names the rule document to upload.
type UploadOptions struct {
	Path string
}

// RunRules lists rules grouped by category.
func (r *Runner) RunRules(ctx context.Context, opts *RulesOptions) error {
	var (
		rules []model.Rule
		err   error
	)
	switch strings.ToLower(opts.Set) {
	case "", RuleSetAll:
		rules, err = r.API.Rules(ctx)
	case RuleSetDefault:
		rules, err = r.API.DefaultRules(ctx)
	case RuleSetCustom:
		rules, err = r.API.CustomRules(ctx)
	default:
		return &apiclient.ValidationError{Field: "set", Reason: fmt.Sprintf("unknown rule set %q", opts.Set)}
	}
	if err != nil {
		return err
	}
	ui.RenderRules(r.out(), rules)
	return nil
}

// RunRulesUpload validates and uploads a .docx rule document, then lists
// the rules the server parsed from it.
func (r *Runner) RunRulesUpload(ctx context.Context, opts *UploadOptions) error {
	doc, err := apiclient.LoadUpload(opts.Path, defaults.RuleDocumentExt)
	if err != nil {
		return err
	}
	res, err := r.API.UploadRules(ctx, doc)
	if err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Uploaded %d rules", len(res.Rules))
	}
	ui.PrintSuccess(msg)
	ui.RenderRules(r.out(), res.Rules)
	return nil
}

// RunRulesClear removes every custom rule.
func (r *Runner) RunRulesClear(ctx context.Context) error {
	msg, err := r.API.ClearCustomRules(ctx)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Custom rules cleared"
	}
	ui.PrintSuccess(msg)
	return nil
}
