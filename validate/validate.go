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

// Package validate runs rule-based validation passes over datasets. Bad data
// never fails a call; only malformed configuration does. Every finding keeps
// the row indices it flagged so reports stay row-accurate.
package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/strata-io/strata/base/log"
	"github.com/strata-io/strata/common/util"
	"github.com/strata-io/strata/dataset"
	"github.com/strata-io/strata/expression"
)

// Finding is one validation outcome. Immutable once produced.
type Finding struct {
	Column       string
	RuleID       string
	Message      string
	Severity     Severity
	InvalidCount int
	Rows         []int
}

// Validator runs the four validation passes: schema conformance, type-mix
// detection, statistical range checks and custom rules.
type Validator struct {
	// SigmaMultiplier bounds the outlier interval [mean-kσ, mean+kσ].
	SigmaMultiplier float64
	// TypeMixThreshold is the fraction of parsable values above which a text
	// column is reported as mistyped.
	TypeMixThreshold float64
	// MonetaryKeywords marks column names whose values must not be negative.
	MonetaryKeywords []string
}

// NewValidator creates a Validator with default thresholds.
func NewValidator() *Validator {
	return &Validator{
		SigmaMultiplier:  3,
		TypeMixThreshold: 0.5,
		MonetaryKeywords: []string{"amount", "price", "count"},
	}
}

// Validate evaluates all passes against a dataset. Both schema and rules may
// be nil. Findings are appended in pass order: schema, type-mix,
// range/outlier, custom.
func (v *Validator) Validate(d *dataset.Dataset, schema Schema, rules []CustomRule) ([]Finding, error) {
	findings := v.checkSchema(d, schema)
	findings = append(findings, v.checkTypeMix(d)...)
	findings = append(findings, v.checkRanges(d)...)
	custom, err := v.checkCustomRules(d, rules)
	if err != nil {
		return nil, errors.Trace(err)
	}
	findings = append(findings, custom...)
	log.Logger().Debug("validated dataset",
		zap.Int("rows", d.NumRows()),
		zap.Int("findings", len(findings)))
	return findings, nil
}

func (v *Validator) checkSchema(d *dataset.Dataset, schema Schema) []Finding {
	var findings []Finding
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		declared := schema[name]
		column, exist := d.Column(name)
		if !exist {
			findings = append(findings, Finding{
				Column:   name,
				RuleID:   "schema_missing",
				Message:  fmt.Sprintf("column %q declared as %v is missing", name, declared),
				Severity: Error,
			})
			continue
		}
		if column.Type() != declared {
			findings = append(findings, Finding{
				Column:   name,
				RuleID:   "schema_type",
				Message:  fmt.Sprintf("column %q declared as %v but found %v", name, declared, column.Type()),
				Severity: Error,
			})
		}
	}
	return findings
}

// checkTypeMix reports text columns whose values mostly parse as numbers or
// dates. Both findings may fire for the same column.
func (v *Validator) checkTypeMix(d *dataset.Dataset) []Finding {
	var findings []Finding
	for _, column := range d.Columns() {
		if column.Type() != dataset.String {
			continue
		}
		var numericRows, dateRows []int
		nonNull := 0
		for i := 0; i < column.Len(); i++ {
			if column.IsNull(i) {
				continue
			}
			nonNull++
			value := column.Format(i)
			if _, err := strconv.ParseFloat(value, 64); err == nil {
				numericRows = append(numericRows, i)
			}
			if _, err := dateparse.ParseAny(value); err == nil {
				dateRows = append(dateRows, i)
			}
		}
		if nonNull == 0 {
			continue
		}
		if float64(len(numericRows)) > v.TypeMixThreshold*float64(nonNull) {
			findings = append(findings, Finding{
				Column: column.Name(),
				RuleID: "mixed_types",
				Message: fmt.Sprintf("column %q: %d of %d values parse as numbers, consider numeric conversion",
					column.Name(), len(numericRows), nonNull),
				Severity:     Warning,
				InvalidCount: len(numericRows),
				Rows:         numericRows,
			})
		}
		if float64(len(dateRows)) > v.TypeMixThreshold*float64(nonNull) {
			findings = append(findings, Finding{
				Column: column.Name(),
				RuleID: "mixed_types",
				Message: fmt.Sprintf("column %q: %d of %d values parse as dates, consider datetime conversion",
					column.Name(), len(dateRows), nonNull),
				Severity:     Warning,
				InvalidCount: len(dateRows),
				Rows:         dateRows,
			})
		}
	}
	return findings
}

// checkRanges flags values outside mean±kσ on every numeric column, and
// negative values on columns whose names look monetary.
func (v *Validator) checkRanges(d *dataset.Dataset) []Finding {
	var findings []Finding
	for _, column := range d.Columns() {
		values, valid, ok := column.Float64s()
		if !ok {
			continue
		}
		var samples []float64
		for i, value := range values {
			if valid[i] {
				samples = append(samples, value)
			}
		}
		if len(samples) >= 2 {
			mean := stat.Mean(samples, nil)
			sigma := stat.StdDev(samples, nil)
			low := mean - v.SigmaMultiplier*sigma
			high := mean + v.SigmaMultiplier*sigma
			var outlierRows []int
			for i, value := range values {
				if valid[i] && (value < low || value > high) {
					outlierRows = append(outlierRows, i)
				}
			}
			if len(outlierRows) > 0 {
				findings = append(findings, Finding{
					Column: column.Name(),
					RuleID: "outliers",
					Message: fmt.Sprintf("column %q: %d values outside [%.4g, %.4g]",
						column.Name(), len(outlierRows), low, high),
					Severity:     Warning,
					InvalidCount: len(outlierRows),
					Rows:         outlierRows,
				})
			}
		}
		if v.isMonetary(column.Name()) {
			var negativeRows []int
			for i, value := range values {
				if valid[i] && value < 0 {
					negativeRows = append(negativeRows, i)
				}
			}
			if len(negativeRows) > 0 {
				findings = append(findings, Finding{
					Column: column.Name(),
					RuleID: "negative_values",
					Message: fmt.Sprintf("column %q: %d negative values",
						column.Name(), len(negativeRows)),
					Severity:     Error,
					InvalidCount: len(negativeRows),
					Rows:         negativeRows,
				})
			}
		}
	}
	return findings
}

func (v *Validator) isMonetary(name string) bool {
	name = strings.ToLower(name)
	for _, keyword := range v.MonetaryKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func (v *Validator) checkCustomRules(d *dataset.Dataset, rules []CustomRule) ([]Finding, error) {
	var findings []Finding
	for _, rule := range rules {
		if _, exist := d.Column(rule.Column); !exist {
			return nil, errors.NotFoundf("rule %q: column %q", rule.Name, rule.Column)
		}
		switch rule.Type {
		case RuleExpression:
			rows, err := expression.EvaluatePredicate(d, rule.Expression)
			if err != nil {
				return nil, errors.Trace(err)
			}
			if len(rows) > 0 {
				findings = append(findings, Finding{
					Column:       rule.Column,
					RuleID:       rule.Name,
					Message:      rule.Message,
					Severity:     rule.Severity,
					InvalidCount: len(rows),
					Rows:         rows,
				})
			}
		case RuleRange:
			rows, err := rowsOutsideRange(d, rule)
			if err != nil {
				return nil, errors.Trace(err)
			}
			if len(rows) > 0 {
				findings = append(findings, Finding{
					Column:       rule.Column,
					RuleID:       rule.Name,
					Message:      rule.Message,
					Severity:     rule.Severity,
					InvalidCount: len(rows),
					Rows:         rows,
				})
			}
		case RuleUnknown:
			findings = append(findings, Finding{
				Column:   rule.Column,
				RuleID:   rule.Name,
				Message:  fmt.Sprintf("%s: unknown rule type", rule.Name),
				Severity: Error,
			})
		}
	}
	return findings, nil
}

// rowsOutsideRange parses the rule expression as "min,max" and returns the
// rows strictly outside the closed interval.
func rowsOutsideRange(d *dataset.Dataset, rule CustomRule) ([]int, error) {
	bounds := strings.Split(rule.Expression, ",")
	if len(bounds) != 2 {
		return nil, errors.NotValidf("rule %q: range %q", rule.Name, rule.Expression)
	}
	low, err := util.ParseFloat[float64](strings.TrimSpace(bounds[0]))
	if err != nil {
		return nil, errors.NotValidf("rule %q: range %q", rule.Name, rule.Expression)
	}
	high, err := util.ParseFloat[float64](strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, errors.NotValidf("rule %q: range %q", rule.Name, rule.Expression)
	}
	column, _ := d.Column(rule.Column)
	values, valid, ok := column.Float64s()
	if !ok {
		return nil, errors.NotValidf("rule %q: column %q is not numeric", rule.Name, rule.Column)
	}
	var rows []int
	for i, value := range values {
		if valid[i] && (value < low || value > high) {
			rows = append(rows, i)
		}
	}
	return rows, nil
}
