// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"slices"
	"strings"
	"testing"

	"github.com/consensys/go-natded/pkg/util/assert"
)

func Test_Permutations_01(t *testing.T) {
	checkPermutations(t, []string{})
}

func Test_Permutations_02(t *testing.T) {
	checkPermutations(t, []string{"a"})
}

func Test_Permutations_03(t *testing.T) {
	checkPermutations(t, []string{"a", "b"})
}

func Test_Permutations_04(t *testing.T) {
	checkPermutations(t, []string{"a", "b", "c"})
}

func Test_Permutations_05(t *testing.T) {
	checkPermutations(t, []string{"a", "b", "c", "d", "e"})
}

func Test_Permutations_06(t *testing.T) {
	items := []string{"a", "b", "c"}
	//
	for range Permutations(items) {
		// Early exit
		break
	}
	// Source is untouched
	assert.Equal(t, []string{"a", "b", "c"}, items)
}

func Test_AnyPermutation_01(t *testing.T) {
	items := []int{3, 1, 2}
	//
	assert.True(t, AnyPermutation(items, slices.IsSorted))
	assert.False(t, AnyPermutation(items, func(p []int) bool { return p[0] == 4 }))
}

func Test_AnyPermutation_02(t *testing.T) {
	var count int
	//
	AnyPermutation([]int{1, 2, 3}, func(p []int) bool {
		count++
		return p[0] == 1 && p[1] == 2 && p[2] == 3
	})
	// Identity comes first
	assert.Equal(t, 1, count)
}

func Test_Factorial_01(t *testing.T) {
	assert.Equal(t, uint(1), Factorial(0))
	assert.Equal(t, uint(1), Factorial(1))
	assert.Equal(t, uint(6), Factorial(3))
	assert.Equal(t, uint(120), Factorial(5))
}

// Check every permutation is generated exactly once.
func checkPermutations(t *testing.T, items []string) {
	t.Helper()
	//
	seen := make(map[string]bool)
	//
	for perm := range Permutations(items) {
		assert.Equal(t, len(items), len(perm))
		//
		key := strings.Join(perm, ",")
		assert.False(t, seen[key], "duplicate permutation %s", key)
		seen[key] = true
		// Same elements
		sorted := slices.Clone(perm)
		slices.Sort(sorted)
		expected := slices.Clone(items)
		slices.Sort(expected)
		assert.Equal(t, expected, sorted)
	}
	//
	assert.Equal(t, int(Factorial(uint(len(items)))), len(seen))
}
