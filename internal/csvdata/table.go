// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

// Package csvdata reads delimiter separated text into tables.
//
// The format is deliberately simple: each line is split on a literal
// separator string. There is no quoting or escaping, so a cell that
// contains the separator is always split. Row 0 is the header.
package csvdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table holds the rows of one delimited resource. Rows may differ in
// length; cells are addressed positionally.
type Table struct {
	rows [][]string
}

// NewTable builds a table from rows. Row 0 is the header.
func NewTable(rows [][]string) *Table {
	return &Table{rows: rows}
}

// Parse reads r line by line and splits every line on sep.
// An empty input yields a table with an empty header.
func Parse(r io.Reader, sep string) (*Table, error) {
	if sep == "" {
		return nil, errors.New("field separator must not be empty")
	}
	br := bufio.NewReader(r)
	t := &Table{}
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			t.rows = append(t.rows, SplitLine(trimEOL(line), sep))
		}
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", len(t.rows)+1, err)
		}
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.ToValidUTF8(line, "\uFFFD")
}

// SplitLine splits line on the literal separator. A line without the
// separator is a single cell, even when empty. Trailing empty cells are
// dropped, so "a,b,," yields [a b] and ",," yields no cells.
func SplitLine(line, sep string) []string {
	if !strings.Contains(line, sep) {
		return []string{line}
	}
	cells := strings.Split(line, sep)
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}

// Header returns row 0, or an empty slice for an empty table.
func (t *Table) Header() []string {
	if len(t.rows) == 0 {
		return []string{}
	}
	return t.rows[0]
}

// Rows returns the data rows after the header.
func (t *Table) Rows() [][]string {
	if len(t.rows) <= 1 {
		return nil
	}
	return t.rows[1:]
}

// Len returns the number of rows including the header.
func (t *Table) Len() int { return len(t.rows) }

// Visit calls fn for every row, header included, in order.
func (t *Table) Visit(fn func(rowNum int, row []string)) {
	for i, row := range t.rows {
		fn(i, row)
	}
}
