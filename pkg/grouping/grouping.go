// Package grouping partitions a report's violations by source file and
// applies the severity filter. Every function here is pure: the input slice
// is never reordered or modified.
package grouping

import (
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// Filter selects which severities survive grouping.
type Filter string

const (
	// All passes every violation through.
	All Filter = "ALL"

	// OnlyError keeps ERROR violations.
	OnlyError Filter = Filter(model.Error)

	// OnlyWarning keeps WARNING violations.
	OnlyWarning Filter = Filter(model.Warning)

	// OnlyInfo keeps INFO violations.
	OnlyInfo Filter = Filter(model.Info)
)

// Filters lists the selectable filters in display order.
var Filters = []Filter{All, OnlyError, OnlyWarning, OnlyInfo}

// ParseFilter maps a case-insensitive name to a Filter. An empty name is All.
func ParseFilter(name string) (Filter, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return All, true
	}
	f := Filter(n)
	for _, known := range Filters {
		if f == known {
			return f, true
		}
	}
	return All, false
}

// Matches reports whether v passes the filter.
func (f Filter) Matches(v model.Violation) bool {
	if f == All || f == "" {
		return true
	}
	return string(v.Rule.Severity) == string(f)
}

// String returns the filter name.
func (f Filter) String() string {
	return string(f)
}

// FileGroup holds the violations of one source file in report order.
type FileGroup struct {
	Path       string
	Violations []model.Violation
}

// Entry is one flattened (path, violation) pair.
type Entry struct {
	Path      string
	Violation model.Violation
}

// PathOf returns the grouping key of a violation. Fragments without a
// relative path group under defaults.UnknownPath.
func PathOf(v model.Violation) string {
	if p := strings.TrimSpace(v.SQLFragment.RelativePath); p != "" {
		return v.SQLFragment.RelativePath
	}
	return defaults.UnknownPath
}

// Group partitions violations by relative path. Groups appear in the order
// their path is first seen; inside a group violations keep report order.
// Groups left empty by the filter are dropped, so a nil or empty input
// yields an empty result for every filter.
func Group(violations []model.Violation, filter Filter) []FileGroup {
	groups := make([]FileGroup, 0)
	index := make(map[string]int)
	for _, v := range violations {
		path := PathOf(v)
		i, seen := index[path]
		if !seen {
			i = len(groups)
			index[path] = i
			groups = append(groups, FileGroup{Path: path})
		}
		if filter.Matches(v) {
			groups[i].Violations = append(groups[i].Violations, v)
		}
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Violations) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Flatten turns groups into a single ordered sequence, group order first and
// then intra-group order.
func Flatten(groups []FileGroup) []Entry {
	entries := make([]Entry, 0, Count(groups))
	for _, g := range groups {
		for _, v := range g.Violations {
			entries = append(entries, Entry{Path: g.Path, Violation: v})
		}
	}
	return entries
}

// Regroup is the inverse of Flatten for any prefix of its output.
// Consecutive entries with the same path share a group.
func Regroup(entries []Entry) []FileGroup {
	groups := make([]FileGroup, 0)
	index := make(map[string]int)
	for _, e := range entries {
		i, seen := index[e.Path]
		if !seen {
			i = len(groups)
			index[e.Path] = i
			groups = append(groups, FileGroup{Path: e.Path})
		}
		groups[i].Violations = append(groups[i].Violations, e.Violation)
	}
	return groups
}

// Count returns the number of violations across all groups.
func Count(groups []FileGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Violations)
	}
	return n
}
