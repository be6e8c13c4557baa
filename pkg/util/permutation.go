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
	"iter"
	"slices"
)

// Permutations returns an iterator over every ordering of a given array of
// items, generated using Heap's algorithm.  The original array is not
// modified.  Each yielded slice is reused between iterations, hence callers
// wishing to retain one must clone it.  An empty array has exactly one
// (empty) permutation.
func Permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		var (
			n     = len(items)
			perm  = slices.Clone(items)
			state = make([]int, n)
		)
		//
		if !yield(perm) {
			return
		}
		//
		for i := 1; i < n; {
			if state[i] < i {
				if i%2 == 0 {
					perm[0], perm[i] = perm[i], perm[0]
				} else {
					perm[state[i]], perm[i] = perm[i], perm[state[i]]
				}
				//
				if !yield(perm) {
					return
				}
				//
				state[i]++
				i = 1
			} else {
				state[i] = 0
				i++
			}
		}
	}
}

// AnyPermutation checks whether some ordering of the given items satisfies a
// predicate.  Orderings are visited in the order produced by Permutations,
// stopping at the first which satisfies the predicate.
func AnyPermutation[T any](items []T, predicate func([]T) bool) bool {
	for perm := range Permutations(items) {
		if predicate(perm) {
			return true
		}
	}
	//
	return false
}

// Factorial returns n!, which is the number of permutations of n items.
func Factorial(n uint) uint {
	var r uint = 1
	//
	for i := uint(2); i <= n; i++ {
		r *= i
	}
	//
	return r
}
