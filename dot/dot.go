// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

/*
Package dot renders a NetModel, together with the critical subnet computed
by an analysis run, as a Graphviz DOT graph using
github.com/awalterschulze/gographviz. Places are drawn as circles,
transitions as boxes; nodes belonging to the critical subnet are filled.
*/
package dot

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"

	"github.com/dalzilio/ptpn"
)

const (
	criticalColor = "lightcoral"
	placeShape    = "circle"
	transShape    = "box"
)

// Render writes model, decorated with report's critical subnet, as a DOT
// graph to w. report may be nil, in which case no node is highlighted.
func Render(w io.Writer, model *ptpn.NetModel, report *ptpn.Report) error {
	g := gographviz.NewGraph()
	if err := g.SetName("net"); err != nil {
		return err
	}
	if err := g.SetDir(true); err != nil {
		return err
	}

	critPlace := make(map[string]bool)
	critTrans := make(map[string]bool)
	if report != nil {
		for _, p := range report.Places() {
			critPlace[p.ID] = true
		}
		for _, t := range report.Transitions() {
			critTrans[t.ID] = true
		}
	}

	placeNode := func(id string) string { return "pl_" + sanitize(id) }
	transNode := func(id string) string { return "tr_" + sanitize(id) }

	for _, p := range model.Places {
		label := fmt.Sprintf("\"%s (%d)\"", p.Name, p.Initial)
		attrs := map[string]string{"shape": placeShape, "label": label}
		if critPlace[p.ID] {
			attrs["style"] = "filled"
			attrs["fillcolor"] = criticalColor
		}
		if err := g.AddNode("net", placeNode(p.ID), attrs); err != nil {
			return err
		}
	}

	for _, t := range model.Trans {
		label := fmt.Sprintf("\"%s\"", t.Name)
		attrs := map[string]string{"shape": transShape, "label": label}
		if critTrans[t.ID] {
			attrs["style"] = "filled"
			attrs["fillcolor"] = criticalColor
		}
		if err := g.AddNode("net", transNode(t.ID), attrs); err != nil {
			return err
		}
	}

	for _, a := range model.Arcs {
		attrs := map[string]string{}
		if a.Mult != 1 {
			attrs["label"] = fmt.Sprintf("\"%d\"", a.Mult)
		}
		src, dst := placeNode(a.PlaceID), transNode(a.TransID)
		if a.Dir == ptpn.ArcOut {
			src, dst = dst, src
		}
		if err := g.AddEdge(src, dst, true, attrs); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, g.String())
	return err
}

// sanitize replaces characters gographviz would otherwise need to quote
// inside an unquoted node id (GspnExpander's synthetic ids contain '/').
func sanitize(id string) string {
	out := make([]rune, 0, len(id))
	for _, r := range id {
		if r == '/' || r == '-' || r == ' ' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
