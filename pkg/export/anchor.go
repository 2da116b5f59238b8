package export

import (
	"fmt"
	"strconv"

	"github.com/spaolacci/murmur3"

	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

const anchorPrefix = "example-sql-"

// AnchorID derives a stable identifier for a violation's example SQL block
// from its location, rule and rewrite text. Equal violations share an ID;
// collisions between distinct violations are not detected.
func AnchorID(v model.Violation) string {
	h := murmur3.New64()
	for _, part := range []string{
		grouping.PathOf(v),
		v.SQLFragment.StatementID,
		strconv.Itoa(v.SQLFragment.LineNumber),
		v.Rule.ID,
		v.ExampleSQL,
	} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%s%016x", anchorPrefix, h.Sum64())
}

// FindByAnchor returns the first violation whose AnchorID equals id.
func FindByAnchor(r *model.ScanReport, id string) (model.Violation, bool) {
	if r == nil {
		return model.Violation{}, false
	}
	for _, v := range r.Violations {
		if AnchorID(v) == id {
			return v, true
		}
	}
	return model.Violation{}, false
}
