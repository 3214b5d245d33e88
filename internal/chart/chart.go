package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ludwigVonKoopa/anim"
)

// Options controls the rendered chart
type Options struct {
	PanelWidth  int // pixels per channel panel
	PanelHeight int
	Title       string
}

func (o Options) withDefaults() Options {
	if o.PanelWidth <= 0 {
		o.PanelWidth = 640
	}
	if o.PanelHeight <= 0 {
		o.PanelHeight = 160
	}
	return o
}

var (
	knotColor  = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	lineColor  = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	frameColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	textColor  = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

// Render draws one horizontal panel per channel: knots as square dots,
// the dense series as a polyline, counts in the panel header. The
// returned canvas comes from the pool; hand it back with PutCanvas
// when done.
func Render(table *anim.SampleTable, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	cols := table.Channels()

	titleH := 0
	if opts.Title != "" {
		titleH = 18
	}
	axisH := 16
	w := opts.PanelWidth
	h := titleH + len(cols)*opts.PanelHeight + axisH

	img := GetCanvas(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	if opts.Title != "" {
		drawLabel(img, 8, 13, textColor, opts.Title)
	}

	for i, col := range cols {
		top := titleH + i*opts.PanelHeight
		drawPanel(img, image.Rect(0, top, w, top+opts.PanelHeight), table, col)
	}

	drawAxis(img, image.Rect(0, h-axisH, w, h), table)
	return img
}

// WritePNG renders the table and writes the chart to path, recycling
// the canvas through the pool.
func WritePNG(table *anim.SampleTable, opts Options, path string) error {
	img := Render(table, opts)
	defer PutCanvas(img)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, img)
}

func drawPanel(img *image.RGBA, rect image.Rectangle, table *anim.SampleTable, col anim.ChannelColumn) {
	inner := image.Rect(rect.Min.X+8, rect.Min.Y+18, rect.Max.X-8, rect.Max.Y-6)
	drawBorder(img, inner, frameColor)

	drawLabel(img, inner.Min.X+2, rect.Min.Y+13, textColor, col.Name)
	interpLabel := fmt.Sprintf("interpolated (%d pts)", len(col.Samples))
	realLabel := fmt.Sprintf("real (%d pts)", len(col.Knots))
	iw := textWidth(interpLabel)
	drawLabel(img, inner.Max.X-iw, rect.Min.Y+13, lineColor, interpLabel)
	drawLabel(img, inner.Max.X-iw-12-textWidth(realLabel), rect.Min.Y+13, knotColor, realLabel)

	lo, hi, ok := valueRange(col)
	if !ok {
		return
	}

	origin := table.KnotMarkers[0]
	uMin, uMax := abscissaSpan(origin, table)

	toX := func(u float64) int {
		px := inner.Min.X + 2 + int(math.Round((u-uMin)/(uMax-uMin)*float64(inner.Dx()-5)))
		return clamp(px, inner.Min.X+1, inner.Max.X-2)
	}
	toY := func(v float64) int {
		py := inner.Max.Y - 3 - int(math.Round((v-lo)/(hi-lo)*float64(inner.Dy()-5)))
		return clamp(py, inner.Min.Y+1, inner.Max.Y-2)
	}

	// Dense series as a polyline, broken where values are undefined.
	prevOK := false
	var px, py int
	for j, m := range table.SampleMarkers {
		v := col.Samples[j]
		if math.IsNaN(v) {
			prevOK = false
			continue
		}
		x, y := toX(abscissa(origin, m)), toY(v)
		if prevOK {
			drawLine(img, px, py, x, y, lineColor)
		}
		px, py, prevOK = x, y, true
	}

	// Knots on top of the line.
	for j, m := range table.KnotMarkers {
		v := col.Knots[j]
		if math.IsNaN(v) {
			continue
		}
		drawSquare(img, toX(abscissa(origin, m)), toY(v), 2, knotColor)
	}
}

func drawAxis(img *image.RGBA, rect image.Rectangle, table *anim.SampleTable) {
	if len(table.SampleMarkers) == 0 {
		return
	}
	first := table.SampleMarkers[0].String()
	last := table.SampleMarkers[len(table.SampleMarkers)-1].String()
	drawLabel(img, rect.Min.X+8, rect.Max.Y-4, textColor, first)
	drawLabel(img, rect.Max.X-8-textWidth(last), rect.Max.Y-4, textColor, last)
}

// abscissa projects a marker onto the shared horizontal axis, measured
// from the first knot.
func abscissa(origin, m anim.Marker) float64 {
	if m.IsFrame() {
		return float64(m.Frame() - origin.Frame())
	}
	return m.Time().Sub(origin.Time()).Seconds()
}

func abscissaSpan(origin anim.Marker, table *anim.SampleTable) (float64, float64) {
	uMin := abscissa(origin, table.KnotMarkers[0])
	uMax := uMin
	for _, m := range table.KnotMarkers {
		if u := abscissa(origin, m); u > uMax {
			uMax = u
		}
	}
	for _, m := range table.SampleMarkers {
		if u := abscissa(origin, m); u > uMax {
			uMax = u
		}
	}
	if uMax == uMin {
		uMax = uMin + 1
	}
	return uMin, uMax
}

// valueRange finds the finite min/max over knots and samples, padded so
// the extremes do not sit on the panel border.
func valueRange(col anim.ChannelColumn) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range [][]float64{col.Knots, col.Samples} {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		return 0, 0, false
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad, true
}

func drawLabel(img *image.RGBA, x, y int, c color.Color, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func drawBorder(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

func drawSquare(img *image.RGBA, cx, cy, half int, c color.RGBA) {
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
