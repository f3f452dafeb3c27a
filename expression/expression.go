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

// Package expression evaluates boolean row predicates over datasets. Column
// names are exposed as variables, null cells as nil.
package expression

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/juju/errors"

	"github.com/strata-io/strata/dataset"
)

// Predicate is a compiled boolean expression over the columns of a dataset.
type Predicate struct {
	program *vm.Program
}

// Compile compiles a predicate. The program must return a boolean.
func Compile(expression string) (*Predicate, error) {
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool())
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Predicate{program: program}, nil
}

// Evaluate runs the predicate on every row and returns the indices of rows it
// selects, in ascending order. Rows whose evaluation fails, for example an
// ordering comparison against a null cell, are never selected.
func (p *Predicate) Evaluate(d *dataset.Dataset) []int {
	env := make(map[string]any, d.NumColumns())
	var selected []int
	for i := 0; i < d.NumRows(); i++ {
		for _, column := range d.Columns() {
			env[column.Name()] = column.Value(i)
		}
		result, err := expr.Run(p.program, env)
		if err != nil {
			continue
		}
		if matched, ok := result.(bool); ok && matched {
			selected = append(selected, i)
		}
	}
	return selected
}

// EvaluatePredicate compiles and evaluates an expression in one shot.
func EvaluatePredicate(d *dataset.Dataset, expression string) ([]int, error) {
	predicate, err := Compile(expression)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return predicate.Evaluate(d), nil
}
