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

// Package sample draws row subsets from datasets.
package sample

import (
	"math"
	"strings"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/strata-io/strata/base"
	"github.com/strata-io/strata/base/log"
	"github.com/strata-io/strata/dataset"
)

// Method is the sampling strategy.
type Method int

const (
	Random Method = iota
	Stratified
	Head
	Tail
)

func (m Method) String() string {
	return [...]string{"random", "stratified", "head", "tail"}[m]
}

// ParseMethod parses a sampling method name.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(name) {
	case "random":
		return Random, nil
	case "stratified":
		return Stratified, nil
	case "head":
		return Head, nil
	case "tail":
		return Tail, nil
	default:
		return 0, errors.NotValidf("sampling method %q", name)
	}
}

// Options controls a sampling call. Stratify is required by the stratified
// method and ignored by the others. A nil seed keeps the engine deterministic:
// random sampling degenerates to taking leading rows.
type Options struct {
	Size     int
	Method   Method
	Stratify string
	Seed     *int64
}

// Sample draws a subset of at most opts.Size rows. The input dataset is never
// mutated.
func Sample(d *dataset.Dataset, opts Options) (*dataset.Dataset, error) {
	if opts.Size <= 0 {
		return nil, errors.NotValidf("sample size %d", opts.Size)
	}
	switch opts.Method {
	case Random:
		return d.Subset(drawRows(d.NumRows(), opts.Size, opts.Seed)), nil
	case Stratified:
		return stratified(d, opts)
	case Head:
		return d.Subset(headRows(d.NumRows(), opts.Size)), nil
	case Tail:
		size := min(opts.Size, d.NumRows())
		rows := make([]int, size)
		for i := range rows {
			rows[i] = d.NumRows() - size + i
		}
		return d.Subset(rows), nil
	default:
		return nil, errors.NotValidf("sampling method %d", opts.Method)
	}
}

// drawRows picks size row indices out of n. Seeded calls use a fresh
// partially shuffled permutation; unseeded calls fall back to leading rows,
// which is deterministic but not a random sample.
func drawRows(n, size int, seed *int64) []int {
	size = min(size, n)
	if seed == nil {
		return headRows(n, size)
	}
	rng := base.NewRandomGenerator(*seed)
	return rng.PartialPerm(n, size)[:size]
}

func headRows(n, size int) []int {
	size = min(size, n)
	rows := make([]int, size)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// stratified draws round(size/groups) rows from every distinct value of the
// stratify column, capped at the group size. Group targets are an equal split
// rather than proportional to group frequency.
func stratified(d *dataset.Dataset, opts Options) (*dataset.Dataset, error) {
	if opts.Stratify == "" {
		return nil, errors.NotValidf("stratified sampling without a grouping column")
	}
	keys, groups, err := d.GroupRows(opts.Stratify)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(keys) == 0 {
		return d.Subset(nil), nil
	}
	perGroup := int(math.Round(float64(opts.Size) / float64(len(keys))))
	log.Logger().Debug("stratified sample",
		zap.String("stratify", opts.Stratify),
		zap.Int("groups", len(keys)),
		zap.Int("per_group", perGroup))
	var rows []int
	for _, group := range groups {
		for _, i := range drawRows(len(group), perGroup, opts.Seed) {
			rows = append(rows, group[i])
		}
	}
	return d.Subset(rows), nil
}
