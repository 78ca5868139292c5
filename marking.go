// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

// Marking is a sparse vector over place (or, inside the expanded net,
// column) indices: a slice of Atoms sorted in strictly increasing order of
// index, omitting zero entries. It is used both for the initial marking
// vector M0 and as the representation of a single column of the pre- and
// net-incidence matrices B and C built by GspnExpander.
type Marking []Atom

// Atom pairs an index with a (possibly negative, for net-incidence columns)
// multiplicity. A multiplicity of 0 never appears in a Marking.
type Atom struct {
	Idx  int
	Mult float64
}

// Get returns the multiplicity associated with index i, or 0 if absent.
func (m Marking) Get(i int) float64 {
	for _, a := range m {
		if a.Idx == i {
			return a.Mult
		}
		if a.Idx > i {
			return 0
		}
	}
	return 0
}

// Set returns the Marking obtained from m by setting the multiplicity of
// index i to mult, inserting or removing the entry as needed to keep m
// sorted and free of zero entries.
func (m Marking) Set(i int, mult float64) Marking {
	if mult == 0 {
		for k, a := range m {
			if a.Idx == i {
				return append(m[:k], m[k+1:]...)
			}
			if a.Idx > i {
				return m
			}
		}
		return m
	}
	for k := range m {
		switch {
		case m[k].Idx == i:
			m[k].Mult = mult
			return m
		case m[k].Idx > i:
			return append(m[:k], append(Marking{{i, mult}}, m[k:]...)...)
		}
	}
	return append(m, Atom{i, mult})
}

// Add returns the Marking obtained from m by adding delta to the
// multiplicity of index i (removing the entry if the result is 0).
func (m Marking) Add(i int, delta float64) Marking {
	return m.Set(i, m.Get(i)+delta)
}

// Plus returns the pointwise sum of m and m2, used to recover a transition's
// post-incidence column F[:,t] = B[:,t] + C[:,t] on demand from the stored
// pre (B) and net (C = F-B) columns, mirroring how the teacher library
// recovers Post from Pre and Delta.
func (m Marking) Plus(m2 Marking) Marking {
	res := make(Marking, 0, len(m)+len(m2))
	i, j := 0, 0
	for {
		switch {
		case i == len(m):
			return append(res, m2[j:]...)
		case j == len(m2):
			return append(res, m[i:]...)
		case m[i].Idx == m2[j].Idx:
			if sum := m[i].Mult + m2[j].Mult; sum != 0 {
				res = append(res, Atom{m[i].Idx, sum})
			}
			i++
			j++
		case m[i].Idx < m2[j].Idx:
			res = append(res, m[i])
			i++
		default:
			res = append(res, m2[j])
			j++
		}
	}
}

// Indices returns the sorted slice of indices with a positive multiplicity;
// entries with a negative multiplicity are left out. For a B column this is
// its whole support. Used by EcsPartitioner to compare transitions' input
// sets.
func (m Marking) Indices() []int {
	idx := make([]int, 0, len(m))
	for _, a := range m {
		if a.Mult > 0 {
			idx = append(idx, a.Idx)
		}
	}
	return idx
}

// sameSupport reports whether m and m2 have identical sets of indices with a
// positive multiplicity, ignoring the multiplicities themselves. This is the
// equality EcsPartitioner uses to group transitions into equal-conflict sets.
func sameSupport(m, m2 Marking) bool {
	a, b := m.Indices(), m2.Indices()
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
