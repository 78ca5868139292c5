// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

// expandedNet is the GSPN-shaped rewriting of a NetModel: only plain P/T
// arcs remain, every probabilistic output distribution having been replaced
// by an intermediate place and one immediate transition per outcome. It is
// never exposed outside this package.
//
// pre[t] and net[t] are the t-th columns of the pre-incidence matrix B and
// the net-incidence matrix C = F - B, stored as sparse Markings over place
// indices (the same representation the teacher library uses for a running
// marking). The post-incidence column is recovered on demand:
// post(t) = pre[t].Plus(net[t]).
type expandedNet struct {
	plID  []string
	trID  []string
	plIdx map[string]int
	trIdx map[string]int

	pre   []Marking // B[:,t]
	net   []Marking // C[:,t] = F[:,t] - B[:,t]
	m0    Marking   // initial marking, over place indices
	w     []float64 // transition weights
	delay []float64 // mean firing delay per transition

	// origin[t] is the id of the *original* transition column t was
	// expanded from (itself, for original transitions).
	origin []string
	// synthetic[t] is true for the immediate transitions inserted by
	// distribution expansion.
	synthetic []bool

	// origPlaceCount and origTransCount are the number of original places
	// and transitions; every place/transition index below them is
	// original, every index at or above it was inserted by expansion.
	origPlaceCount int
	origTransCount int
}

func (n *expandedNet) addPlace(id string, initial int) int {
	idx := len(n.plID)
	n.plIdx[id] = idx
	n.plID = append(n.plID, id)
	if initial != 0 {
		n.m0 = n.m0.Set(idx, float64(initial))
	}
	return idx
}

func (n *expandedNet) addTrans(id, origin string, weight, meanDelay float64, synth bool) int {
	idx := len(n.trID)
	n.trIdx[id] = idx
	n.trID = append(n.trID, id)
	n.pre = append(n.pre, nil)
	n.net = append(n.net, nil)
	n.w = append(n.w, weight)
	n.delay = append(n.delay, meanDelay)
	n.origin = append(n.origin, origin)
	n.synthetic = append(n.synthetic, synth)
	return idx
}

func (n *expandedNet) post(t int) Marking {
	return n.pre[t].Plus(n.net[t])
}

// expand rewrites model into its GSPN-shaped expanded net, per spec §4.2.
// Iteration is always in model's own declaration order (model.Places,
// model.Trans, model.Arcs), so synthetic ids and column indices are
// deterministic across runs on identical input.
func expand(model *NetModel) (*expandedNet, error) {
	n := &expandedNet{
		plIdx: make(map[string]int, len(model.Places)),
		trIdx: make(map[string]int, 2*len(model.Trans)),
	}
	for _, p := range model.Places {
		n.addPlace(p.ID, p.Initial)
	}
	for _, t := range model.Trans {
		n.addTrans(t.ID, t.ID, 1, t.Delay, false)
	}
	n.origPlaceCount = len(n.plID)
	n.origTransCount = len(n.trID)
	for _, t := range model.Trans {
		tIdx := n.trIdx[t.ID]

		// Incoming arcs set B directly.
		for _, a := range model.Arcs {
			if a.TransID != t.ID || a.Dir != ArcIn {
				continue
			}
			pIdx := n.plIdx[a.PlaceID]
			n.pre[tIdx] = n.pre[tIdx].Add(pIdx, float64(a.Mult))
			n.net[tIdx] = n.net[tIdx].Add(pIdx, -float64(a.Mult))
		}

		// Group outgoing arcs by distribution id, preserving the order in
		// which each distribution id was first seen. The empty string
		// stands for the synthetic "None" group of undistributed post arcs.
		var distOrder []string
		distArcs := make(map[string][]Arc)
		for _, a := range model.Arcs {
			if a.TransID != t.ID || a.Dir != ArcOut {
				continue
			}
			if _, ok := distArcs[a.DistID]; !ok {
				distOrder = append(distOrder, a.DistID)
			}
			distArcs[a.DistID] = append(distArcs[a.DistID], a)
		}

		for _, d := range distOrder {
			if d == "" {
				for _, a := range distArcs[d] {
					qIdx := n.plIdx[a.PlaceID]
					n.net[tIdx] = n.net[tIdx].Add(qIdx, float64(a.Mult))
				}
				continue
			}
			// Insert the intermediate place p_D.
			pD := t.ID + "/" + d
			pDIdx := n.addPlace(pD, 0)
			n.net[tIdx] = n.net[tIdx].Add(pDIdx, 1)

			for _, a := range distArcs[d] {
				tNewID := t.ID + "/" + d + "/" + a.ID
				qIdx := n.plIdx[a.PlaceID]
				tNewIdx := n.addTrans(tNewID, t.ID, a.Prob, 0, true)
				n.pre[tNewIdx] = n.pre[tNewIdx].Add(pDIdx, 1)
				n.net[tNewIdx] = n.net[tNewIdx].Add(pDIdx, -1)
				n.net[tNewIdx] = n.net[tNewIdx].Add(qIdx, float64(a.Mult))
			}
		}
	}
	return n, nil
}
