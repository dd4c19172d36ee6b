package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	sent "github.com/revelaction/lemmix/sentence"
)

// layout of the dependency diagram, in pixels
const (
	wordDistance = 120
	offsetX      = 50
	arcSpacing   = 22
	arrowSize    = 6
	wordSpacing  = 40
	rowPadding   = 30
	fontSize     = 16
)

const (
	arcStyle   = "fill:none;stroke:black;stroke-width:2"
	arrowStyle = "fill:black;stroke:none"
	wordStyle  = "font-family:Arial,sans-serif;font-size:16px;text-anchor:middle;fill:black"
	tagStyle   = "font-family:Arial,sans-serif;font-size:12px;text-anchor:middle;fill:#777"
	labelStyle = "font-family:Arial,sans-serif;font-size:12px;text-anchor:middle;fill:black"
)

type arc struct {
	start, end int // sentence positions, start < end
	label      string
	left       bool // the dependent is at start
	level      int
}

// WriteDependencySVG draws the dependency arcs of doc, one row per sentence,
// in the style of displaCy.
func WriteDependencySVG(w io.Writer, doc sent.Doc) {
	rows := doc.SentenceTokens()

	width, height := 2*offsetX, rowPadding
	rowArcs := make([][]arc, len(rows))
	for i, tokens := range rows {
		rowArcs[i] = arcs(tokens)
		width = max(width, 2*offsetX+(len(tokens)-1)*wordDistance)
		height += rowHeight(rowArcs[i])
	}

	canvas := svg.New(w)
	canvas.Startview(width, height, 0, 0, width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	top := rowPadding
	for i, tokens := range rows {
		drawRow(canvas, tokens, rowArcs[i], top)
		top += rowHeight(rowArcs[i])
	}

	canvas.End()
}

func arcs(tokens []sent.Token) []arc {
	if len(tokens) == 0 {
		return nil
	}

	first := tokens[0].Id
	out := []arc{}
	for i, t := range tokens {
		h := t.Head - first
		if t.Dep == "ROOT" || h == i || h < 0 || h >= len(tokens) {
			continue
		}

		a := arc{start: min(i, h), end: max(i, h), label: t.Dep, left: i < h}
		a.level = a.end - a.start
		out = append(out, a)
	}

	return out
}

func rowHeight(arcs []arc) int {
	highest := 1
	for _, a := range arcs {
		highest = max(highest, a.level)
	}
	return highest*arcSpacing + 2*wordSpacing + rowPadding
}

func drawRow(canvas *svg.SVG, tokens []sent.Token, arcs []arc, top int) {
	highest := 1
	for _, a := range arcs {
		highest = max(highest, a.level)
	}
	baseline := top + highest*arcSpacing

	for _, a := range arcs {
		x1 := offsetX + a.start*wordDistance
		x2 := offsetX + a.end*wordDistance
		curve := baseline - a.level*arcSpacing

		d := fmt.Sprintf("M%d,%d C%d,%d %d,%d %d,%d", x1, baseline, x1, curve, x2, curve, x2, baseline)
		canvas.Path(d, arcStyle)

		// arrow head on the dependent
		x := x2
		if a.left {
			x = x1
		}
		canvas.Polygon(
			[]int{x, x - arrowSize, x + arrowSize},
			[]int{baseline, baseline - 2*arrowSize, baseline - 2*arrowSize},
			arrowStyle,
		)

		canvas.Text((x1+x2)/2, curve+(baseline-curve)/4-2, a.label, labelStyle)
	}

	for i, t := range tokens {
		x := offsetX + i*wordDistance
		canvas.Text(x, baseline+wordSpacing/2+fontSize/2, strings.TrimSpace(t.Text), wordStyle)
		canvas.Text(x, baseline+wordSpacing+fontSize/2, t.Pos, tagStyle)
	}
}
