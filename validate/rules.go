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
	"encoding/json"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"

	"github.com/strata-io/strata/dataset"
)

// Severity classifies a finding. Warnings are reported but never fail the
// verdict; errors do.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	return [...]string{"warning", "error"}[s]
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Trace(err)
	}
	switch strings.ToLower(name) {
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		return errors.NotValidf("severity %q", name)
	}
	return nil
}

// RuleType is the closed set of custom rule kinds. Rule files authored for
// newer versions may carry kinds this version does not know; they decode to
// RuleUnknown and surface as a finding instead of failing the load.
type RuleType int

const (
	RuleUnknown RuleType = iota
	RuleExpression
	RuleRange
)

func (t RuleType) String() string {
	return [...]string{"unknown", "expression", "range"}[t]
}

func (t *RuleType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Trace(err)
	}
	switch strings.ToLower(name) {
	case "expression":
		*t = RuleExpression
	case "range":
		*t = RuleRange
	default:
		*t = RuleUnknown
	}
	return nil
}

// CustomRule is an externally authored validation rule. Expression rules
// carry a boolean predicate selecting invalid rows; range rules carry a
// "min,max" bound for a numeric column.
type CustomRule struct {
	Name       string   `json:"name" validate:"required"`
	Column     string   `json:"column" validate:"required"`
	Type       RuleType `json:"rule_type"`
	Expression string   `json:"expression" validate:"required"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
}

// LoadRules reads a JSON rule file: an array of CustomRule records.
func LoadRules(path string) ([]CustomRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var rules []CustomRule
	if err = json.Unmarshal(data, &rules); err != nil {
		return nil, errors.Trace(err)
	}
	checker := validator.New()
	for i := range rules {
		if err = checker.Struct(&rules[i]); err != nil {
			return nil, errors.NotValidf("rule %d: %v", i, err)
		}
	}
	return rules, nil
}

// Schema maps column names to their declared types.
type Schema map[string]dataset.Type

// LoadSchema reads a JSON schema file: an object mapping column names to type
// names (Int64, Float64, String, Bool, Timestamp).
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var declared map[string]string
	if err = json.Unmarshal(data, &declared); err != nil {
		return nil, errors.Trace(err)
	}
	schema := make(Schema, len(declared))
	for column, name := range declared {
		typ, err := dataset.ParseType(name)
		if err != nil {
			return nil, errors.Trace(err)
		}
		schema[column] = typ
	}
	return schema, nil
}
