package markup

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/eballetbo/LaserReady-sub000/internal/pathconv"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
)

// unassigned collects leaves whose layer is not in the layer list.
const unassigned = "unassigned"

// Export writes shapes as an SVG document of the given page size. Leaves are
// grouped by layer, one <g> per layer in layer order, stroked in the layer
// color; groups are flattened. Per-path style overrides are kept.
func Export(shapes []shape.Shape, layers []shape.Layer, width, height float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(width), num(height), num(width), num(height))
	b.WriteByte('\n')

	leaves := shape.Leaves(shapes)
	known := map[string]bool{}
	for _, l := range layers {
		known[l.ID] = true
		writeLayer(&b, l.ID, l.Name, string(l.Mode), l.Color, leaves, func(id string) bool { return id == l.ID })
	}
	writeLayer(&b, unassigned, "", "", "#000000", leaves, func(id string) bool { return !known[id] })

	b.WriteString("</svg>\n")
	return b.String()
}

func writeLayer(b *strings.Builder, id, name, mode, color string, leaves []shape.Shape, match func(string) bool) {
	var body strings.Builder
	for _, sh := range leaves {
		if !match(shape.LayerOf(sh)) {
			continue
		}
		switch v := sh.(type) {
		case *shape.Path:
			writePath(&body, v)
		case *shape.Text:
			writeText(&body, v, color)
		}
	}
	if body.Len() == 0 {
		return
	}
	fmt.Fprintf(b, `  <g id="%s"`, attr(id))
	if name != "" {
		fmt.Fprintf(b, ` data-name="%s"`, attr(name))
	}
	if mode != "" {
		fmt.Fprintf(b, ` data-mode="%s"`, attr(mode))
	}
	fmt.Fprintf(b, ` stroke="%s" fill="none">`+"\n", attr(color))
	b.WriteString(body.String())
	b.WriteString("  </g>\n")
}

func writePath(b *strings.Builder, p *shape.Path) {
	if len(p.Nodes) == 0 {
		return
	}
	d := pathconv.ToCanvas(p).ToSVG()
	if d == "" {
		return
	}
	fmt.Fprintf(b, `    <path id="%s" d="%s"`, attr(p.ID), d)
	if p.StrokeColor != nil {
		fmt.Fprintf(b, ` stroke="%s"`, attr(*p.StrokeColor))
	}
	if p.StrokeWidth != nil {
		fmt.Fprintf(b, ` stroke-width="%s"`, num(*p.StrokeWidth))
	}
	if p.FillColor != nil {
		fmt.Fprintf(b, ` fill="%s"`, attr(*p.FillColor))
	}
	b.WriteString("/>\n")
}

func writeText(b *strings.Builder, t *shape.Text, color string) {
	m := shape.Measurer()
	fmt.Fprintf(b, `    <text id="%s" transform="matrix(%s)" font-family="%s" font-size="%s" font-weight="%s" font-style="%s" fill="%s" stroke="none">`,
		attr(t.ID), joinNums(t.Transform().ToSlice()), attr(t.FontFamily), num(t.FontSize),
		attr(t.FontWeight), attr(t.FontStyle), attr(color))
	for i, line := range t.Lines() {
		y := m.Ascent(t) + float64(i)*m.LineHeight(t)
		fmt.Fprintf(b, `<tspan x="0" y="%s">%s</tspan>`, num(y), html.EscapeString(line))
	}
	b.WriteString("</text>\n")
}

func attr(s string) string {
	return html.EscapeString(s)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinNums(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}
