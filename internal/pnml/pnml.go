// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

/*
Package pnml reads and writes the PTPN dialect of PNML (Petri Net Markup
Language): standard P/T-net elements plus two tool-specific extensions —
a <time_function> on transitions and a <distribution> on output arcs — and,
on output, the <bound> and <critical_subnet> elements that report an
analysis run's results. The two tool-specific extensions are read only: the
writer emits places, transitions and arcs with their multiplicities, but no
<time_function> or <distribution> elements. This package is a thin, structural
encoding/xml-based wrapper: it never interprets PTPN semantics itself, only
maps between XML and the ptpn package's NetModel/Report types.
*/
package pnml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dalzilio/ptpn"
)

// ErrParse is returned, wrapped with detail, for a malformed PNML
// document: XML that does not decode, non-numeric text content, or an arc
// that does not connect a place and a transition. References to undeclared
// places/transitions and other invariant violations are reported by
// ptpn.NewNetModel (ptpn.ErrValidation), not as ErrParse.
var ErrParse = errors.New("pnml: parse error")

const doctype = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// pnmlDoc is the root element of a PNML document.
type pnmlDoc struct {
	XMLName xml.Name `xml:"http://www.pnml.org/version-2009/grammar/pnml pnml"`
	Net     xmlNet   `xml:"net"`
}

type xmlNet struct {
	ID   string  `xml:"id,attr"`
	Name xmlText `xml:"name"`
	Page xmlPage `xml:"page"`
}

type xmlPage struct {
	Places []xmlPlace `xml:"place"`
	Trans  []xmlTrans `xml:"transition"`
	Arcs   []xmlArc   `xml:"arc"`
}

type xmlText struct {
	Text string `xml:"text"`
}

type xmlPlace struct {
	ID      string  `xml:"id,attr"`
	Name    xmlText `xml:"name"`
	Initial *struct {
		Text string `xml:"text"`
	} `xml:"initialMarking"`
}

type xmlTrans struct {
	ID           string          `xml:"id,attr"`
	Name         xmlText         `xml:"name"`
	Toolspecific *xmlToolspecTr  `xml:"toolspecific"`
	Bounds       []xmlBound      `xml:"bound"`
}

type xmlToolspecTr struct {
	TimeFunction *xmlTimeFunction `xml:"time_function"`
}

type xmlTimeFunction struct {
	Type   string       `xml:"type,attr"`
	Params []xmlParam   `xml:"param"`
}

type xmlParam struct {
	Name string `xml:"name,attr"`
	Val  string `xml:"text"`
}

type xmlBound struct {
	Metric string  `xml:"metric,attr"`
	StatQ  string  `xml:"statQ,attr"`
	Value  xmlText `xml:"text"`
}

type xmlArc struct {
	ID           string         `xml:"id,attr"`
	Source       string         `xml:"source,attr"`
	Target       string         `xml:"target,attr"`
	Inscription  *xmlText       `xml:"inscription"`
	Toolspecific *xmlToolspecArc `xml:"toolspecific"`
}

type xmlToolspecArc struct {
	Distribution *xmlDistribution `xml:"distribution"`
}

type xmlDistribution struct {
	ID          string `xml:"id,attr"`
	Probability string `xml:"probability>text"`
}

// Parse reads a PNML document from r and builds a NetModel from its P/T-net
// elements and PTPN tool-specific extensions, calling ptpn.NewNetModel to
// validate the result. Malformed documents are reported via ErrParse.
func Parse(r io.Reader) (*ptpn.NetModel, error) {
	var doc pnmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	idOf := func(raw, prefix string) string {
		return strings.TrimPrefix(raw, prefix)
	}

	places := make([]ptpn.Place, 0, len(doc.Net.Page.Places))
	for _, p := range doc.Net.Page.Places {
		init := 0
		if p.Initial != nil {
			v, err := strconv.Atoi(strings.TrimSpace(p.Initial.Text))
			if err != nil {
				return nil, fmt.Errorf("%w: place %s: bad initialMarking: %s", ErrParse, p.ID, err)
			}
			init = v
		}
		places = append(places, ptpn.Place{
			ID:      idOf(p.ID, "pl_"),
			Name:    p.Name.Text,
			Initial: init,
		})
	}

	trans := make([]ptpn.Transition, 0, len(doc.Net.Page.Trans))
	for _, t := range doc.Net.Page.Trans {
		tr := ptpn.Transition{
			ID:     idOf(t.ID, "tr_"),
			Name:   t.Name.Text,
			Params: map[string]float64{},
		}
		if t.Toolspecific != nil && t.Toolspecific.TimeFunction != nil {
			tf := t.Toolspecific.TimeFunction
			tr.Time = ptpn.TimeFunction(tf.Type)
			for _, p := range tf.Params {
				v, err := strconv.ParseFloat(strings.TrimSpace(p.Val), 64)
				if err != nil {
					return nil, fmt.Errorf("%w: transition %s: bad param %s: %s", ErrParse, t.ID, p.Name, err)
				}
				tr.Params[p.Name] = v
			}
		}
		trans = append(trans, tr)
	}

	var arcs []ptpn.Arc
	for _, a := range doc.Net.Page.Arcs {
		mult := 1
		if a.Inscription != nil {
			v, err := strconv.Atoi(strings.TrimSpace(a.Inscription.Text))
			if err != nil {
				return nil, fmt.Errorf("%w: arc %s: bad inscription: %s", ErrParse, a.ID, err)
			}
			mult = v
		}

		srcPlace, srcIsPlace := strings.CutPrefix(a.Source, "pl_")
		tgtPlace, tgtIsPlace := strings.CutPrefix(a.Target, "pl_")

		switch {
		case srcIsPlace && !tgtIsPlace:
			arcs = append(arcs, ptpn.Arc{
				ID:      a.ID,
				Mult:    mult,
				PlaceID: srcPlace,
				TransID: idOf(a.Target, "tr_"),
				Dir:     ptpn.ArcIn,
			})
		case !srcIsPlace && tgtIsPlace:
			arc := ptpn.Arc{
				ID:      a.ID,
				Mult:    mult,
				PlaceID: tgtPlace,
				TransID: idOf(a.Source, "tr_"),
				Dir:     ptpn.ArcOut,
			}
			if a.Toolspecific != nil && a.Toolspecific.Distribution != nil {
				d := a.Toolspecific.Distribution
				prob, err := strconv.ParseFloat(strings.TrimSpace(d.Probability), 64)
				if err != nil {
					return nil, fmt.Errorf("%w: arc %s: bad probability: %s", ErrParse, a.ID, err)
				}
				arc.DistID = d.ID
				arc.Prob = prob
				arc.HasProb = true
			}
			arcs = append(arcs, arc)
		default:
			return nil, fmt.Errorf("%w: arc %s does not connect a place and a transition", ErrParse, a.ID)
		}
	}

	return ptpn.NewNetModel(doc.Net.ID, places, trans, arcs)
}

// place and trans are the writer-side mirrors of xmlPlace/xmlTrans, kept
// distinct from the reader structs because MarshalXML needs value receivers
// and arc back-references the teacher's pnmlwrite.go idiom does not need on
// the read side.
type place struct {
	id, name string
	initial  int
}

type arc struct {
	place *place
	mult  int
}

type trans struct {
	id, name string
	in, out  []arc
	bounds   map[ptpn.Metric]ptpn.Bound
}

// MarshalXML makes place an xml.Marshaler, mirroring the teacher's id
// prefixing convention ("pl_" + id) so that places and transitions may
// share a name without colliding ids.
func (v place) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "pl_" + v.id}}
	e.EncodeToken(start)
	e.EncodeElement(xmlText{v.name}, xml.StartElement{Name: xml.Name{Local: "name"}})
	if v.initial != 0 {
		e.EncodeElement(xmlText{strconv.Itoa(v.initial)}, xml.StartElement{Name: xml.Name{Local: "initialMarking"}})
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML makes trans an xml.Marshaler, emitting its name and any
// computed <bound> elements. Its in/out arcs are written separately by
// WriteAnnotated, after the transition element.
func (v trans) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "tr_" + v.id}}
	e.EncodeToken(start)
	e.EncodeElement(xmlText{v.name}, xml.StartElement{Name: xml.Name{Local: "name"}})
	for m, b := range v.bounds {
		boundStart := xml.StartElement{
			Name: xml.Name{Local: "bound"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "metric"}, Value: string(m)},
				{Name: xml.Name{Local: "statQ"}, Value: string(b.Sense)},
			},
		}
		e.EncodeToken(boundStart)
		e.EncodeElement(xmlText{strconv.FormatFloat(b.Value, 'g', -1, 64)}, xml.StartElement{Name: xml.Name{Local: "text"}})
		e.EncodeToken(xml.EndElement{Name: boundStart.Name})
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func encodeArc(e *xml.Encoder, id, src, tgt string, mult int) {
	start := xml.StartElement{
		Name: xml.Name{Local: "arc"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: id},
			{Name: xml.Name{Local: "source"}, Value: src},
			{Name: xml.Name{Local: "target"}, Value: tgt},
		},
	}
	e.EncodeToken(start)
	if mult != 1 {
		e.EncodeElement(xmlText{strconv.Itoa(mult)}, xml.StartElement{Name: xml.Name{Local: "inscription"}})
	}
	e.EncodeToken(xml.EndElement{Name: start.Name})
}

// WriteAnnotated writes model, decorated with report's per-transition
// <bound> elements and a trailing <critical_subnet> element listing the
// critical places and transitions by original id, as PNML to w.
func WriteAnnotated(w io.Writer, model *ptpn.NetModel, report *ptpn.Report) error {
	places := make([]place, len(model.Places))
	byID := make(map[string]*place, len(model.Places))
	for i, p := range model.Places {
		places[i] = place{id: p.ID, name: p.Name, initial: p.Initial}
		byID[p.ID] = &places[i]
	}

	transOut := make([]trans, len(model.Trans))
	transIdx := make(map[string]int, len(model.Trans))
	for i, t := range model.Trans {
		transOut[i] = trans{id: t.ID, name: t.Name, bounds: t.Bounds}
		transIdx[t.ID] = i
	}
	for _, a := range model.Arcs {
		i := transIdx[a.TransID]
		if a.Dir == ptpn.ArcIn {
			transOut[i].in = append(transOut[i].in, arc{place: byID[a.PlaceID], mult: a.Mult})
		} else {
			transOut[i].out = append(transOut[i].out, arc{place: byID[a.PlaceID], mult: a.Mult})
		}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if _, err := w.Write([]byte(doctype)); err != nil {
		return err
	}

	root := xml.StartElement{
		Name: xml.Name{Space: "http://www.pnml.org/version-2009/grammar/pnml", Local: "pnml"},
	}
	enc.EncodeToken(root)
	netStart := xml.StartElement{
		Name: xml.Name{Local: "net"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "type"}, Value: "http://www.pnml.org/version-2009/grammar/ptnet"},
			{Name: xml.Name{Local: "id"}, Value: model.Name},
		},
	}
	enc.EncodeToken(netStart)
	enc.EncodeElement(xmlText{model.Name}, xml.StartElement{Name: xml.Name{Local: "name"}})

	pageStart := xml.StartElement{Name: xml.Name{Local: "page"}, Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "page"}}}
	enc.EncodeToken(pageStart)
	for _, p := range places {
		enc.EncodeElement(p, xml.StartElement{Name: xml.Name{Local: "place"}})
	}
	for _, t := range transOut {
		enc.EncodeElement(t, xml.StartElement{Name: xml.Name{Local: "transition"}})
		for _, c := range t.in {
			encodeArc(enc, fmt.Sprintf("p2t-%s-%s", c.place.id, t.id), "pl_"+c.place.id, "tr_"+t.id, c.mult)
		}
		for _, c := range t.out {
			encodeArc(enc, fmt.Sprintf("t2p-%s-%s", t.id, c.place.id), "tr_"+t.id, "pl_"+c.place.id, c.mult)
		}
	}
	enc.EncodeToken(xml.EndElement{Name: pageStart.Name})

	if report != nil {
		csStart := xml.StartElement{Name: xml.Name{Local: "critical_subnet"}}
		enc.EncodeToken(csStart)
		for _, p := range report.Places() {
			enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: "pl"}, Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "pl_" + p.ID}}})
			enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "pl"}})
		}
		for _, t := range report.Transitions() {
			enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: "tr"}, Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "tr_" + t.ID}}})
			enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "tr"}})
		}
		enc.EncodeToken(xml.EndElement{Name: csStart.Name})
	}

	enc.EncodeToken(xml.EndElement{Name: netStart.Name})
	enc.EncodeToken(xml.EndElement{Name: root.Name})
	return enc.Flush()
}
