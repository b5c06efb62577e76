// Package query provides SQL query building utilities with projection mapping
// over LMS tables.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view property names to qualified column references (alias.column)
// for a base table and any tables joined onto it.
type ProjectionMap struct {
	table      string
	alias      string
	joins      []string
	columns    map[string]string
	columnList []string
}

// NewProjectionMap creates a ProjectionMap for the given table and alias.
func NewProjectionMap(table, alias string) *ProjectionMap {
	return &ProjectionMap{
		table:      table,
		alias:      alias,
		columns:    make(map[string]string),
		columnList: make([]string, 0),
	}
}

// Join appends a join clause, e.g. "JOIN mdl_modules m ON m.id = cm.module".
func (p *ProjectionMap) Join(clause string) *ProjectionMap {
	p.joins = append(p.joins, clause)
	return p
}

// Project adds a column mapping from database column to view property name.
// Unqualified columns are qualified with the base table alias.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := column
	if !strings.Contains(column, ".") && !strings.Contains(column, "(") {
		qualified = fmt.Sprintf("%s.%s", p.alias, column)
	}
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the base table reference with alias.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s %s", p.table, p.alias)
}

// From returns the base table and its joins for use in a FROM clause.
func (p *ProjectionMap) From() string {
	if len(p.joins) == 0 {
		return p.Table()
	}
	return p.Table() + " " + strings.Join(p.joins, " ")
}

// Column returns the qualified column for a view property name, or the input if not mapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns all mapped columns as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}

// ColumnList returns all mapped columns as a slice.
func (p *ProjectionMap) ColumnList() []string {
	return p.columnList
}
