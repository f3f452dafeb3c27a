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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-io/strata/dataset"
)

func writeTestFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSchema(t *testing.T) {
	path := writeTestFile(t, "schema.json", `{"age": "Int64", "amount": "Float64", "name": "String"}`)
	schema, err := LoadSchema(path)
	assert.NoError(t, err)
	assert.Equal(t, Schema{
		"age":    dataset.Int64,
		"amount": dataset.Float64,
		"name":   dataset.String,
	}, schema)
}

func TestLoadSchemaErrors(t *testing.T) {
	_, err := LoadSchema("no_such_schema.json")
	assert.Error(t, err)
	_, err = LoadSchema(writeTestFile(t, "schema.json", `{"age": "Decimal"}`))
	assert.Error(t, err)
	_, err = LoadSchema(writeTestFile(t, "schema.json", `[1, 2]`))
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	path := writeTestFile(t, "rules.json", `[
		{"name": "no_negative", "column": "amount", "rule_type": "expression",
		 "expression": "amount < 0", "message": "negative amount", "severity": "error"},
		{"name": "score_range", "column": "score", "rule_type": "range",
		 "expression": "0,100", "severity": "warning"},
		{"name": "future", "column": "score", "rule_type": "regex",
		 "expression": "x"}
	]`)
	rules, err := LoadRules(path)
	assert.NoError(t, err)
	assert.Len(t, rules, 3)
	assert.Equal(t, RuleExpression, rules[0].Type)
	assert.Equal(t, Error, rules[0].Severity)
	assert.Equal(t, RuleRange, rules[1].Type)
	assert.Equal(t, Warning, rules[1].Severity)
	// unknown kinds decode instead of failing the load
	assert.Equal(t, RuleUnknown, rules[2].Type)
}

func TestLoadRulesErrors(t *testing.T) {
	_, err := LoadRules("no_such_rules.json")
	assert.Error(t, err)
	// missing required fields
	_, err = LoadRules(writeTestFile(t, "rules.json", `[{"name": "r"}]`))
	assert.Error(t, err)
	// bad severity
	_, err = LoadRules(writeTestFile(t, "rules.json",
		`[{"name": "r", "column": "c", "rule_type": "range", "expression": "0,1", "severity": "fatal"}]`))
	assert.Error(t, err)
	// not an array
	_, err = LoadRules(writeTestFile(t, "rules.json", `{"name": "r"}`))
	assert.Error(t, err)
}
