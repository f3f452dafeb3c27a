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

package validate

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/strata-io/strata/dataset"
)

func TestReportVerdict(t *testing.T) {
	report := NewReport([]Finding{
		{Column: "a", RuleID: "outliers", Severity: Warning, InvalidCount: 2},
		{Column: "b", RuleID: "schema_type", Severity: Error},
	})
	assert.True(t, report.HasErrors())
	assert.Equal(t, 1, report.NumErrors())
	assert.Equal(t, 1, report.NumWarnings())

	// warnings alone never fail the verdict
	report = NewReport([]Finding{
		{Column: "a", RuleID: "outliers", Severity: Warning},
	})
	assert.False(t, report.HasErrors())
}

func TestReportSummary(t *testing.T) {
	report := NewReport([]Finding{
		{Column: "price", RuleID: "negative_values", Message: "1 negative value", Severity: Error, InvalidCount: 1},
		{Column: "note", RuleID: "mixed_types", Message: "looks numeric", Severity: Warning, InvalidCount: 3},
	})
	summary := report.Summary()
	assert.Contains(t, summary, "validation failed: 1 errors, 1 warnings")
	assert.Contains(t, summary, "negative_values")
	assert.Contains(t, summary, "mixed_types")

	assert.Contains(t, NewReport(nil).Summary(), "validation passed")
}

func TestReportInvalidRows(t *testing.T) {
	d := lo.Must(dataset.New(
		dataset.NewInt64Column("id", []int64{10, 11, 12, 13, 14}, nil),
	))
	report := NewReport([]Finding{
		{Column: "id", RuleID: "a", Severity: Warning, InvalidCount: 2, Rows: []int{3, 1}},
		{Column: "id", RuleID: "b", Severity: Error, InvalidCount: 2, Rows: []int{1, 4}},
	})
	invalid := report.InvalidRows(d)
	assert.Equal(t, 3, invalid.NumRows())
	column, _ := invalid.Column("id")
	assert.Equal(t, int64(11), column.Value(0))
	assert.Equal(t, int64(13), column.Value(1))
	assert.Equal(t, int64(14), column.Value(2))
}

func TestReportInvalidRowsEmpty(t *testing.T) {
	d := lo.Must(dataset.New(
		dataset.NewInt64Column("id", []int64{1, 2}, nil),
	))
	invalid := NewReport([]Finding{
		{Column: "id", RuleID: "schema_missing", Severity: Error},
	}).InvalidRows(d)
	assert.Equal(t, 0, invalid.NumRows())
}
