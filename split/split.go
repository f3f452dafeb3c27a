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

// Package split partitions datasets into disjoint train and test subsets.
package split

import (
	"math"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/strata-io/strata/base"
	"github.com/strata-io/strata/base/log"
	"github.com/strata-io/strata/dataset"
)

// Spec describes a train/test split. A nil seed degenerates the split to a
// deterministic head/rest partition.
type Spec struct {
	TestFraction float64
	Stratify     string
	Seed         *int64
}

// Split partitions a dataset into train and test subsets. Row index sets are
// always disjoint and exhaustive: train rows + test rows equal the input rows
// exactly, with rounding bias going to train.
func Split(d *dataset.Dataset, spec Spec) (train, test *dataset.Dataset, err error) {
	if spec.TestFraction <= 0 || spec.TestFraction >= 1 {
		return nil, nil, errors.NotValidf("test fraction %v outside (0, 1)", spec.TestFraction)
	}
	if spec.Stratify != "" {
		return stratified(d, spec)
	}
	trainRows, testRows := partition(d.NumRows(), spec.TestFraction, spec.Seed)
	log.Logger().Debug("split dataset",
		zap.Int("train_rows", len(trainRows)),
		zap.Int("test_rows", len(testRows)))
	return d.Subset(trainRows), d.Subset(testRows), nil
}

// partition shuffles [0,n) when seeded and cuts off the trailing
// round(n*fraction) indices as test.
func partition(n int, fraction float64, seed *int64) (trainRows, testRows []int) {
	testSize := int(math.Round(float64(n) * fraction))
	trainSize := n - testSize
	var perm []int
	if seed != nil {
		rng := base.NewRandomGenerator(*seed)
		perm = rng.Perm(n)
	} else {
		perm = make([]int, n)
		for i := range perm {
			perm[i] = i
		}
	}
	return perm[:trainSize], perm[trainSize:]
}

// stratified partitions every distinct value of the stratify column with the
// same fraction, preserving the fraction approximately per group. Group
// pieces accumulate in discovery order.
func stratified(d *dataset.Dataset, spec Spec) (train, test *dataset.Dataset, err error) {
	keys, groups, err := d.GroupRows(spec.Stratify)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	log.Logger().Debug("stratified split",
		zap.String("stratify", spec.Stratify),
		zap.Int("groups", len(keys)))
	var trainRows, testRows []int
	for _, group := range groups {
		groupTrain, groupTest := partition(len(group), spec.TestFraction, spec.Seed)
		for _, i := range groupTrain {
			trainRows = append(trainRows, group[i])
		}
		for _, i := range groupTest {
			testRows = append(testRows, group[i])
		}
	}
	return d.Subset(trainRows), d.Subset(testRows), nil
}
