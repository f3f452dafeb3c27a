// Copyright 2025 strata Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dataset implements the in-memory columnar table consumed by the
// sampling, splitting and validation engines. A dataset is immutable once
// built; every derived table is freshly allocated.
package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// Type is the scalar type of a column.
type Type int

const (
	Int64 Type = iota
	Float64
	String
	Bool
	Timestamp
)

func (t Type) String() string {
	return [...]string{"Int64", "Float64", "String", "Bool", "Timestamp"}[t]
}

// ParseType parses a type name as it appears in schema files.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "int64", "int", "integer":
		return Int64, nil
	case "float64", "float", "double":
		return Float64, nil
	case "string", "str", "utf8":
		return String, nil
	case "bool", "boolean":
		return Bool, nil
	case "timestamp", "datetime", "date":
		return Timestamp, nil
	default:
		return 0, errors.NotValidf("type name %q", name)
	}
}

// Column is a named, typed sequence with a per-row null marker.
type Column interface {
	Name() string
	Type() Type
	Len() int
	IsNull(i int) bool
	// Value returns the boxed value at row i, or nil when the row is null.
	Value(i int) any
	// Format returns a stable textual form of row i, used as grouping key.
	// Null rows format as the empty string.
	Format(i int) string
	// Float64s casts the column to floating point for statistics. The second
	// return value marks valid (non-null) rows. The third reports whether the
	// column is castable at all.
	Float64s() ([]float64, []bool, bool)
	// Subset copies the given rows into a fresh column.
	Subset(rows []int) Column
	// Append concatenates another column of the same name and type.
	Append(other Column) (Column, error)
}

type column[T any] struct {
	name   string
	typ    Type
	values []T
	nulls  []bool
	format func(T) string
	cast   func(T) float64
}

func (c *column[T]) Name() string { return c.name }

func (c *column[T]) Type() Type { return c.typ }

func (c *column[T]) Len() int { return len(c.values) }

func (c *column[T]) IsNull(i int) bool { return c.nulls[i] }

func (c *column[T]) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.values[i]
}

func (c *column[T]) Format(i int) string {
	if c.nulls[i] {
		return ""
	}
	return c.format(c.values[i])
}

func (c *column[T]) Float64s() ([]float64, []bool, bool) {
	if c.cast == nil {
		return nil, nil, false
	}
	values := make([]float64, len(c.values))
	valid := make([]bool, len(c.values))
	for i, v := range c.values {
		if !c.nulls[i] {
			values[i] = c.cast(v)
			valid[i] = true
		}
	}
	return values, valid, true
}

func (c *column[T]) Subset(rows []int) Column {
	values := make([]T, len(rows))
	nulls := make([]bool, len(rows))
	for i, row := range rows {
		values[i] = c.values[row]
		nulls[i] = c.nulls[row]
	}
	return &column[T]{
		name:   c.name,
		typ:    c.typ,
		values: values,
		nulls:  nulls,
		format: c.format,
		cast:   c.cast,
	}
}

func (c *column[T]) Append(other Column) (Column, error) {
	o, ok := other.(*column[T])
	if !ok || o.typ != c.typ {
		return nil, errors.NotValidf("concatenating %v column %q with %v column %q",
			c.typ, c.name, other.Type(), other.Name())
	}
	if o.name != c.name {
		return nil, errors.NotValidf("concatenating column %q with column %q", c.name, o.name)
	}
	values := make([]T, 0, len(c.values)+len(o.values))
	values = append(values, c.values...)
	values = append(values, o.values...)
	nulls := make([]bool, 0, len(c.nulls)+len(o.nulls))
	nulls = append(nulls, c.nulls...)
	nulls = append(nulls, o.nulls...)
	return &column[T]{
		name:   c.name,
		typ:    c.typ,
		values: values,
		nulls:  nulls,
		format: c.format,
		cast:   c.cast,
	}, nil
}

func normalizeNulls(n int, nulls []bool) []bool {
	if nulls == nil {
		return make([]bool, n)
	}
	return nulls
}

// NewInt64Column creates an integer column. A nil nulls slice means no nulls.
func NewInt64Column(name string, values []int64, nulls []bool) Column {
	return &column[int64]{
		name:   name,
		typ:    Int64,
		values: values,
		nulls:  normalizeNulls(len(values), nulls),
		format: func(v int64) string { return strconv.FormatInt(v, 10) },
		cast:   func(v int64) float64 { return float64(v) },
	}
}

// NewFloat64Column creates a floating point column.
func NewFloat64Column(name string, values []float64, nulls []bool) Column {
	return &column[float64]{
		name:   name,
		typ:    Float64,
		values: values,
		nulls:  normalizeNulls(len(values), nulls),
		format: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		cast:   func(v float64) float64 { return v },
	}
}

// NewStringColumn creates a string column.
func NewStringColumn(name string, values []string, nulls []bool) Column {
	return &column[string]{
		name:   name,
		typ:    String,
		values: values,
		nulls:  normalizeNulls(len(values), nulls),
		format: func(v string) string { return v },
	}
}

// NewBoolColumn creates a boolean column.
func NewBoolColumn(name string, values []bool, nulls []bool) Column {
	return &column[bool]{
		name:   name,
		typ:    Bool,
		values: values,
		nulls:  normalizeNulls(len(values), nulls),
		format: strconv.FormatBool,
	}
}

// NewTimestampColumn creates a temporal column.
func NewTimestampColumn(name string, values []time.Time, nulls []bool) Column {
	return &column[time.Time]{
		name:   name,
		typ:    Timestamp,
		values: values,
		nulls:  normalizeNulls(len(values), nulls),
		format: func(v time.Time) string { return v.Format(time.RFC3339) },
	}
}

// Dataset is an ordered set of equally sized named columns.
type Dataset struct {
	columns []Column
	numRows int
}

// New creates a dataset from columns. All columns must share one length and
// carry unique names.
func New(columns ...Column) (*Dataset, error) {
	numRows := 0
	names := make(map[string]struct{}, len(columns))
	for i, column := range columns {
		if i == 0 {
			numRows = column.Len()
		} else if column.Len() != numRows {
			return nil, errors.NotValidf("column %q has %d rows, expected %d",
				column.Name(), column.Len(), numRows)
		}
		if _, exist := names[column.Name()]; exist {
			return nil, errors.NotValidf("duplicated column %q", column.Name())
		}
		names[column.Name()] = struct{}{}
	}
	return &Dataset{columns: columns, numRows: numRows}, nil
}

// NumRows returns the shared row count.
func (d *Dataset) NumRows() int {
	return d.numRows
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Columns returns the columns in declaration order.
func (d *Dataset) Columns() []Column {
	return d.columns
}

// Names returns the column names in declaration order.
func (d *Dataset) Names() []string {
	return lo.Map(d.columns, func(c Column, _ int) string { return c.Name() })
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	for _, column := range d.columns {
		if column.Name() == name {
			return column, true
		}
	}
	return nil, false
}

// Subset materializes the given rows, in the given order, as a new dataset.
func (d *Dataset) Subset(rows []int) *Dataset {
	columns := make([]Column, len(d.columns))
	for i, column := range d.columns {
		columns[i] = column.Subset(rows)
	}
	return &Dataset{columns: columns, numRows: len(rows)}
}

// Append vertically concatenates another dataset with an identical schema.
func (d *Dataset) Append(other *Dataset) (*Dataset, error) {
	if other.NumColumns() != d.NumColumns() {
		return nil, errors.NotValidf("concatenating %d columns with %d columns",
			d.NumColumns(), other.NumColumns())
	}
	columns := make([]Column, len(d.columns))
	for i, column := range d.columns {
		appended, err := column.Append(other.columns[i])
		if err != nil {
			return nil, errors.Trace(err)
		}
		columns[i] = appended
	}
	return &Dataset{columns: columns, numRows: d.numRows + other.numRows}, nil
}

// Distinct returns the distinct formatted values of a column in first
// appearance order.
func (d *Dataset) Distinct(name string) ([]string, error) {
	keys, _, err := d.GroupRows(name)
	return keys, err
}

// GroupRows buckets row indices by the formatted value of a column. Keys are
// returned in first appearance order.
func (d *Dataset) GroupRows(name string) ([]string, [][]int, error) {
	column, exist := d.Column(name)
	if !exist {
		return nil, nil, errors.NotFoundf("column %q", name)
	}
	var keys []string
	positions := make(map[string]int)
	var groups [][]int
	for i := 0; i < column.Len(); i++ {
		key := column.Format(i)
		position, exist := positions[key]
		if !exist {
			position = len(keys)
			positions[key] = position
			keys = append(keys, key)
			groups = append(groups, nil)
		}
		groups[position] = append(groups[position], i)
	}
	return keys, groups, nil
}
