// Package pagination exposes a growing prefix of a grouped violation list.
//
// The controller only counts pages; it holds no violations. Window flattens
// the groups it is given, cuts the visible prefix and regroups it, so a file
// whose violations all sit past the prefix is absent from the page.
package pagination

import (
	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
)

// Controller tracks how many pages are revealed. The zero value is not
// usable; construct with New.
type Controller struct {
	page     int
	pageSize int
}

// New returns a controller on page 1. A non-positive pageSize falls back to
// defaults.PageSize.
func New(pageSize int) Controller {
	if pageSize <= 0 {
		pageSize = defaults.PageSize
	}
	return Controller{page: 1, pageSize: pageSize}
}

// At returns a controller positioned on page. Pages below 1 clamp to 1.
func At(page, pageSize int) Controller {
	c := New(pageSize)
	if page > 1 {
		c.page = page
	}
	return c
}

// Page returns the current page, starting at 1.
func (c Controller) Page() int { return c.page }

// PageSize returns the fixed page size.
func (c Controller) PageSize() int { return c.pageSize }

// VisibleCount is page * pageSize, independent of how many items exist.
func (c Controller) VisibleCount() int { return c.page * c.pageSize }

// Advance returns the controller moved one page forward.
func (c Controller) Advance() Controller {
	c.page++
	return c
}

// Reset returns the controller back on page 1.
func (c Controller) Reset() Controller {
	c.page = 1
	return c
}

// HasMore reports whether total items exceed what is visible.
func (c Controller) HasMore(total int) bool {
	return c.VisibleCount() < total
}

// Page is one rendered window over the filtered groups.
type Page struct {
	// Groups is the visible prefix regrouped per file, in original order.
	Groups []grouping.FileGroup

	// Visible is the number of violations in Groups.
	Visible int

	// Total is the number of violations across all filtered groups.
	Total int

	// HasMore is true while Visible < Total.
	HasMore bool
}

// Window returns the visible prefix of groups: min(VisibleCount, total)
// flattened entries, regrouped.
func (c Controller) Window(groups []grouping.FileGroup) Page {
	entries := grouping.Flatten(groups)
	total := len(entries)
	n := c.VisibleCount()
	if n > total {
		n = total
	}
	return Page{
		Groups:  grouping.Regroup(entries[:n]),
		Visible: n,
		Total:   total,
		HasMore: c.HasMore(total),
	}
}
