package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// groupsOf builds n violations spread over files of perFile violations each.
func groupsOf(n, perFile int) []grouping.FileGroup {
	vs := make([]model.Violation, 0, n)
	for i := 0; i < n; i++ {
		vs = append(vs, model.Violation{
			Rule:        model.Rule{Severity: model.Error},
			SQLFragment: model.SQLFragment{RelativePath: fmt.Sprintf("f%03d.xml", i/perFile), StatementID: fmt.Sprint(i)},
		})
	}
	return grouping.Group(vs, grouping.All)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	c := New(0)
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 50, c.PageSize())
	assert.Equal(t, 50, c.VisibleCount())
}

func TestAt_Clamps(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, At(-3, 10).Page())
	assert.Equal(t, 4, At(4, 10).Page())
}

func TestAdvance_IsValueSemantic(t *testing.T) {
	t.Parallel()
	c := New(10)
	next := c.Advance()
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 2, next.Page())
	assert.Equal(t, 20, next.VisibleCount())
	assert.Equal(t, 1, next.Reset().Page())
}

func TestWindow_FirstPage(t *testing.T) {
	t.Parallel()
	groups := groupsOf(120, 30)
	p := New(50).Window(groups)

	assert.Equal(t, 50, p.Visible)
	assert.Equal(t, 120, p.Total)
	assert.True(t, p.HasMore)
	require.Len(t, p.Groups, 2)
	assert.Len(t, p.Groups[0].Violations, 30)
	assert.Len(t, p.Groups[1].Violations, 20)
}

func TestWindow_FileBeyondPrefixIsAbsent(t *testing.T) {
	t.Parallel()
	groups := groupsOf(120, 30)
	p := New(50).Window(groups)
	for _, g := range p.Groups {
		assert.NotEqual(t, "f002.xml", g.Path)
		assert.NotEqual(t, "f003.xml", g.Path)
	}
}

func TestWindow_Monotonic(t *testing.T) {
	t.Parallel()
	groups := groupsOf(173, 17)
	c := New(50)
	prev := c.Window(groups)
	for i := 0; i < 5; i++ {
		c = c.Advance()
		cur := c.Window(groups)
		assert.GreaterOrEqual(t, cur.Visible, prev.Visible)

		prevFlat := grouping.Flatten(prev.Groups)
		curFlat := grouping.Flatten(cur.Groups)
		require.GreaterOrEqual(t, len(curFlat), len(prevFlat))
		assert.Equal(t, prevFlat, curFlat[:len(prevFlat)], "advancing removed a visible violation")
		prev = cur
	}
	assert.False(t, prev.HasMore)
	assert.Equal(t, 173, prev.Visible)
	assert.Equal(t, groups, prev.Groups)
}

func TestWindow_ExactBoundary(t *testing.T) {
	t.Parallel()
	p := New(50).Window(groupsOf(50, 10))
	assert.False(t, p.HasMore)
	assert.Equal(t, 50, p.Visible)
}

func TestWindow_Empty(t *testing.T) {
	t.Parallel()
	p := New(50).Window(nil)
	assert.Empty(t, p.Groups)
	assert.Zero(t, p.Total)
	assert.False(t, p.HasMore)
}
