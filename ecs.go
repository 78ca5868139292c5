// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

// partition groups the columns of the expanded net into equal-conflict sets
// (ECSs): two transitions belong to the same ECS iff their input places
// (the support of their B column, ignoring multiplicities) are identical.
// Extended-conflict grouping (input sets merely intersecting) is deliberately
// not implemented; spec §4.3 requires equality.
//
// Within every ECS of size >= 2 whose weights do not already sum to 1 (within
// tolerance), the weights are normalized in place by dividing by their sum.
// Singleton ECSs are left untouched.
func partition(n *expandedNet) [][]int {
	const tol = 1e-9

	var ecs [][]int
	for t := range n.trID {
		found := false
		for k, group := range ecs {
			if sameSupport(n.pre[t], n.pre[group[0]]) {
				ecs[k] = append(ecs[k], t)
				found = true
				break
			}
		}
		if !found {
			ecs = append(ecs, []int{t})
		}
	}

	for _, group := range ecs {
		if len(group) < 2 {
			continue
		}
		var sum float64
		for _, t := range group {
			sum += n.w[t]
		}
		if sum == 0 {
			continue
		}
		if diff := sum - 1; diff > tol || diff < -tol {
			for _, t := range group {
				n.w[t] /= sum
			}
		}
	}
	return ecs
}
