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

package expression

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/strata-io/strata/dataset"
)

func newTestDataset(t *testing.T) *dataset.Dataset {
	d, err := dataset.New(
		dataset.NewInt64Column("user_id", []int64{1, 2, 3, 4}, nil),
		dataset.NewFloat64Column("amount", []float64{10.5, -3, 0, 99}, []bool{false, false, true, false}),
		dataset.NewStringColumn("country", []string{"US", "DE", "FR", "US"}, nil),
	)
	assert.NoError(t, err)
	return d
}

func TestEvaluatePredicate(t *testing.T) {
	d := newTestDataset(t)
	selected, err := EvaluatePredicate(d, "amount < 0")
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, selected)

	selected, err = EvaluatePredicate(d, `country == "US"`)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 3}, selected)

	selected, err = EvaluatePredicate(d, `country == "US" && amount > 50`)
	assert.NoError(t, err)
	assert.Equal(t, []int{3}, selected)
}

func TestEvaluatePredicateNulls(t *testing.T) {
	// the null amount in row 2 must not select nor abort
	d := newTestDataset(t)
	selected, err := EvaluatePredicate(d, "amount >= 0")
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 3}, selected)

	selected, err = EvaluatePredicate(d, "amount == nil")
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, selected)
}

func TestCompileError(t *testing.T) {
	_, err := Compile("amount >")
	assert.Error(t, err)
}

func TestEvaluateReuse(t *testing.T) {
	d := newTestDataset(t)
	predicate := lo.Must(Compile("user_id > 2"))
	assert.Equal(t, []int{2, 3}, predicate.Evaluate(d))
	assert.Equal(t, []int{2, 3}, predicate.Evaluate(d))
}
