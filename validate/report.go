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
	"fmt"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/strata-io/strata/dataset"
)

// Report aggregates findings into a verdict and a human readable summary.
type Report struct {
	Findings []Finding
}

// NewReport creates a report over findings.
func NewReport(findings []Finding) *Report {
	return &Report{Findings: findings}
}

// HasErrors reports whether any finding carries error severity. Warnings
// never fail the verdict.
func (r *Report) HasErrors() bool {
	return lo.SomeBy(r.Findings, func(f Finding) bool { return f.Severity == Error })
}

// NumErrors counts error severity findings.
func (r *Report) NumErrors() int {
	return lo.CountBy(r.Findings, func(f Finding) bool { return f.Severity == Error })
}

// NumWarnings counts warning severity findings.
func (r *Report) NumWarnings() int {
	return lo.CountBy(r.Findings, func(f Finding) bool { return f.Severity == Warning })
}

// Summary renders the verdict and one line per finding.
func (r *Report) Summary() string {
	builder := strings.Builder{}
	if len(r.Findings) == 0 {
		builder.WriteString("validation passed: no findings\n")
		return builder.String()
	}
	verdict := "passed"
	if r.HasErrors() {
		verdict = "failed"
	}
	builder.WriteString(fmt.Sprintf("validation %s: %d errors, %d warnings\n",
		verdict, r.NumErrors(), r.NumWarnings()))
	table := tablewriter.NewWriter(&builder)
	table.SetHeader([]string{"severity", "column", "rule", "invalid", "message"})
	for _, finding := range r.Findings {
		table.Append([]string{
			finding.Severity.String(),
			finding.Column,
			finding.RuleID,
			strconv.Itoa(finding.InvalidCount),
			finding.Message,
		})
	}
	table.Render()
	return builder.String()
}

// InvalidRows materializes the rows flagged by at least one finding, in
// ascending row order. Column level findings such as schema mismatches flag
// no rows.
func (r *Report) InvalidRows(d *dataset.Dataset) *dataset.Dataset {
	flagged := mapset.NewSet[int]()
	for _, finding := range r.Findings {
		flagged.Append(finding.Rows...)
	}
	rows := flagged.ToSlice()
	sort.Ints(rows)
	return d.Subset(rows)
}
