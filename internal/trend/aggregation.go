// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package trend

import (
	"fmt"
	"strings"
)

// Aggregation combines values that fall into the same bucket.
type Aggregation int

const (
	Sum Aggregation = iota
	First
	Last
	Min
	Max
)

var aggregationNames = [...]string{Sum: "sum", First: "first", Last: "last", Min: "min", Max: "max"}

// AggregationNames lists the accepted aggregation names in order.
func AggregationNames() []string { return append([]string(nil), aggregationNames[:]...) }

// String returns the aggregation's configuration name.
func (a Aggregation) String() string {
	if a < Sum || a > Max {
		return fmt.Sprintf("aggregation(%d)", int(a))
	}
	return aggregationNames[a]
}

// ParseAggregation parses an aggregation name, ignoring case.
func ParseAggregation(name string) (Aggregation, error) {
	for i, n := range aggregationNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Aggregation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown aggregation %q (want one of %s)", name, strings.Join(aggregationNames[:], ", "))
}

// Combine folds current into the bucket's stored value. ok is false when
// the bucket is still empty, in which case current is returned as is.
func (a Aggregation) Combine(stored int, ok bool, current int) int {
	if !ok {
		return current
	}
	switch a {
	case First:
		return stored
	case Last:
		return current
	case Min:
		return min(stored, current)
	case Max:
		return max(stored, current)
	default:
		return stored + current
	}
}
