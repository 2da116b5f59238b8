package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// RuleCategory is the rules of one category in listing order.
type RuleCategory struct {
	Name  string
	Rules []model.Rule
}

// GroupRules buckets rules by category. Rules without a category land in
// defaults.UncategorizedRule, which sorts last; other categories sort by name.
// Within a category, more severe rules come first and ties keep input order.
func GroupRules(rules []model.Rule) []RuleCategory {
	index := make(map[string]int)
	var out []RuleCategory
	for _, r := range rules {
		name := strings.TrimSpace(r.Category)
		if name == "" {
			name = defaults.UncategorizedRule
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, RuleCategory{Name: name})
		}
		out[i].Rules = append(out[i].Rules, r)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Name == defaults.UncategorizedRule {
			return false
		}
		if out[b].Name == defaults.UncategorizedRule {
			return true
		}
		return out[a].Name < out[b].Name
	})
	for _, cat := range out {
		sort.SliceStable(cat.Rules, func(a, b int) bool {
			return cat.Rules[a].Severity.Score() > cat.Rules[b].Severity.Score()
		})
	}
	return out
}

// RenderRules writes a rule listing grouped by category.
func RenderRules(w io.Writer, rules []model.Rule) {
	if len(rules) == 0 {
		Fprintf(w, "%s\n", HelpStyle.Render("No rules"))
		return
	}
	for _, cat := range GroupRules(rules) {
		Fprintf(w, "\n%s %s\n",
			CategoryStyle.Render(" "+cat.Name+" "),
			StatLabelStyle.Render(fmt.Sprintf("(%d)", len(cat.Rules))),
		)
		for _, r := range cat.Rules {
			section := ""
			if r.Section != "" {
				section = "§" + r.Section + " "
			}
			source := ""
			if r.Source == model.SourceCustom {
				source = " " + BracketStyle.Render("[custom]")
			}
			Fprintf(w, "  %s %s%s%s\n",
				SeverityStyle(r.Severity).Render(fmt.Sprintf("%-7s", r.Severity)),
				section,
				StatValueStyle.Render(r.Name),
				source,
			)
			if d := strings.TrimSpace(r.Description); d != "" {
				Fprintf(w, "          %s\n", StatLabelStyle.Render(d))
			}
		}
	}
}
