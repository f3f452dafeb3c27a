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

package dataset

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func newTestDataset(t *testing.T) *Dataset {
	d, err := New(
		NewInt64Column("user_id", []int64{1, 2, 3, 4, 5}, nil),
		NewFloat64Column("amount", []float64{10.5, 20, 0, 42.5, 7}, []bool{false, false, true, false, false}),
		NewStringColumn("country", []string{"US", "DE", "US", "FR", "DE"}, nil),
	)
	assert.NoError(t, err)
	return d
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("Int64")
	assert.NoError(t, err)
	assert.Equal(t, Int64, typ)
	typ, err = ParseType("datetime")
	assert.NoError(t, err)
	assert.Equal(t, Timestamp, typ)
	_, err = ParseType("decimal")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	d := newTestDataset(t)
	assert.Equal(t, 5, d.NumRows())
	assert.Equal(t, 3, d.NumColumns())
	assert.Equal(t, []string{"user_id", "amount", "country"}, d.Names())

	// ragged columns are rejected
	_, err := New(
		NewInt64Column("a", []int64{1, 2}, nil),
		NewInt64Column("b", []int64{1}, nil),
	)
	assert.Error(t, err)
	// duplicated names are rejected
	_, err = New(
		NewInt64Column("a", []int64{1}, nil),
		NewInt64Column("a", []int64{2}, nil),
	)
	assert.Error(t, err)
}

func TestColumn(t *testing.T) {
	d := newTestDataset(t)
	column, exist := d.Column("amount")
	assert.True(t, exist)
	assert.Equal(t, Float64, column.Type())
	assert.True(t, column.IsNull(2))
	assert.Nil(t, column.Value(2))
	assert.Equal(t, "", column.Format(2))
	assert.Equal(t, 10.5, column.Value(0))
	assert.Equal(t, "10.5", column.Format(0))
	_, exist = d.Column("missing")
	assert.False(t, exist)
}

func TestFloat64s(t *testing.T) {
	d := newTestDataset(t)
	ints, _ := d.Column("user_id")
	values, valid, ok := ints.Float64s()
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, values)
	assert.Equal(t, []bool{true, true, true, true, true}, valid)

	floats, _ := d.Column("amount")
	values, valid, ok = floats.Float64s()
	assert.True(t, ok)
	assert.False(t, valid[2])
	assert.Equal(t, 42.5, values[3])

	strs, _ := d.Column("country")
	_, _, ok = strs.Float64s()
	assert.False(t, ok)
}

func TestSubset(t *testing.T) {
	d := newTestDataset(t)
	subset := d.Subset([]int{4, 0})
	assert.Equal(t, 2, subset.NumRows())
	column, _ := subset.Column("user_id")
	assert.Equal(t, int64(5), column.Value(0))
	assert.Equal(t, int64(1), column.Value(1))
}

func TestAppend(t *testing.T) {
	d := newTestDataset(t)
	appended, err := d.Subset([]int{0, 1}).Append(d.Subset([]int{2}))
	assert.NoError(t, err)
	assert.Equal(t, 3, appended.NumRows())
	column, _ := appended.Column("country")
	assert.Equal(t, "US", column.Value(2))

	// mismatched schemas are rejected
	other := lo.Must(New(NewInt64Column("user_id", []int64{1}, nil)))
	_, err = d.Append(other)
	assert.Error(t, err)
}

func TestDistinct(t *testing.T) {
	d := newTestDataset(t)
	distinct, err := d.Distinct("country")
	assert.NoError(t, err)
	assert.Equal(t, []string{"US", "DE", "FR"}, distinct)
	_, err = d.Distinct("missing")
	assert.Error(t, err)
}

func TestGroupRows(t *testing.T) {
	d := newTestDataset(t)
	keys, groups, err := d.GroupRows("country")
	assert.NoError(t, err)
	assert.Equal(t, []string{"US", "DE", "FR"}, keys)
	assert.Equal(t, [][]int{{0, 2}, {1, 4}, {3}}, groups)
}

func TestTimestampColumn(t *testing.T) {
	moment := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	column := NewTimestampColumn("ts", []time.Time{moment}, nil)
	assert.Equal(t, Timestamp, column.Type())
	assert.Equal(t, "2020-01-02T03:04:05Z", column.Format(0))
	_, _, ok := column.Float64s()
	assert.False(t, ok)
}
