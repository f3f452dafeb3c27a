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

package base

import (
	"math/rand"
)

// RandomGenerator is the random generator for strata. A generator is created
// fresh per call and never shared, so repeated calls with the same seed are
// deterministic.
type RandomGenerator struct {
	*rand.Rand
}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator(seed int64) RandomGenerator {
	return RandomGenerator{rand.New(rand.NewSource(seed))}
}

// Perm returns a pseudo-random permutation of the integers [0,n).
func (rng RandomGenerator) Perm(n int) []int {
	return rng.Rand.Perm(n)
}

// PartialPerm returns the integers [0,n) with only the first min(k,n)
// positions shuffled by Fisher-Yates. Positions beyond k keep whatever the
// partial shuffle left behind, so only the prefix is guaranteed
// well-distributed.
func (rng RandomGenerator) PartialPerm(n, k int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if k > n {
		k = n
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}
