// Package model defines the scan report received from the SQL analysis
// service: the report itself, its violations, the rules they break and the
// SQL fragments they point at.
//
// Values are data only. Grouping, paging, diffing and export live in their
// own packages and never mutate a report they are handed.
package model
