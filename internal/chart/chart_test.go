package chart

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludwigVonKoopa/anim"
)

func rampTable(t *testing.T, derivative bool) *anim.SampleTable {
	t.Helper()

	p := anim.NewFramePath(anim.View{X: 0, Y: 0, HalfWidth: 30, HalfHeight: 15})
	require.NoError(t, p.Move(anim.Frames(12), 100, 20))
	require.NoError(t, p.Zoom(anim.Frames(8), 2))

	table, err := p.BuildTable(derivative)
	require.NoError(t, err)
	return table
}

func countColor(img *image.RGBA, want [3]uint8) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R == want[0] && c.G == want[1] && c.B == want[2] {
				n++
			}
		}
	}
	return n
}

func TestRenderDrawsAllPanels(t *testing.T) {
	table := rampTable(t, false)

	opts := Options{PanelWidth: 480, PanelHeight: 120, Title: "pan and zoom"}
	img := Render(table, opts)
	defer PutCanvas(img)

	want := image.Rect(0, 0, 480, 18+4*120+16)
	assert.Equal(t, want, img.Bounds())

	// Both the dense polyline and the knot squares made it onto the canvas.
	assert.Greater(t, countColor(img, [3]uint8{40, 90, 200}), 100, "polyline pixels")
	assert.GreaterOrEqual(t, countColor(img, [3]uint8{220, 60, 60}), 3*25, "knot pixels")
}

func TestRenderDerivativeTable(t *testing.T) {
	table := rampTable(t, true)

	img := Render(table, Options{})
	defer PutCanvas(img)

	// End knots carry no rate; the panels must still render.
	assert.Greater(t, countColor(img, [3]uint8{40, 90, 200}), 0)
}

func TestWritePNG(t *testing.T) {
	table := rampTable(t, false)
	path := filepath.Join(t.TempDir(), "orbit.png")

	require.NoError(t, WritePNG(table, Options{PanelWidth: 320, PanelHeight: 80}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 4*80+16), img.Bounds())
}

func TestCanvasPoolReusesBySize(t *testing.T) {
	rect := image.Rect(0, 0, 64, 48)

	a := GetCanvas(rect)
	require.Equal(t, rect, a.Bounds())
	PutCanvas(a)

	b := GetCanvas(rect)
	assert.Equal(t, rect, b.Bounds())
	PutCanvas(b)

	// A different size never aliases pooled canvases of another size.
	c := GetCanvas(image.Rect(0, 0, 32, 32))
	assert.Equal(t, image.Rect(0, 0, 32, 32), c.Bounds())
	PutCanvas(c)
}
