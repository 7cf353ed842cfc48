package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"fieldplot/internal/model"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	minCanvas    = 100
	marginLeft   = 56
	marginRight  = 24
	marginTop    = 32
	marginBottom = 44

	circleSegments = 64
	dashLen        = 4.0
	gapLen         = 3.0
	arrowSize      = 7.0
)

// canvas maps data coordinates onto the plot area of an image.
type canvas struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	view Bounds
	area image.Rectangle
	sx   float64
	sy   float64
}

func newCanvas(opts Options) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(White), image.Point{}, draw.Src)
	area := image.Rect(marginLeft, marginTop, opts.Width-marginRight, opts.Height-marginBottom)
	return &canvas{
		img:  img,
		z:    vector.NewRasterizer(opts.Width, opts.Height),
		view: opts.View,
		area: area,
		sx:   float64(area.Dx()) / opts.View.Width(),
		sy:   float64(area.Dy()) / opts.View.Height(),
	}
}

// toPixel converts a data point to image coordinates (y grows downward).
func (cv *canvas) toPixel(p model.Point) (float32, float32) {
	x := float64(cv.area.Min.X) + (p.X-cv.view.XMin)*cv.sx
	y := float64(cv.area.Max.Y) - (p.Y-cv.view.YMin)*cv.sy
	return float32(x), float32(y)
}

// PixelOf reports where a data point lands in a rendered image.
func PixelOf(p model.Point, opts Options) image.Point {
	cv := &canvas{
		view: opts.View,
		area: image.Rect(marginLeft, marginTop, opts.Width-marginRight, opts.Height-marginBottom),
	}
	cv.sx = float64(cv.area.Dx()) / opts.View.Width()
	cv.sy = float64(cv.area.Dy()) / opts.View.Height()
	x, y := cv.toPixel(p)
	return image.Pt(int(math.Round(float64(x))), int(math.Round(float64(y))))
}

func (cv *canvas) begin() {
	cv.z.Reset(cv.img.Bounds().Dx(), cv.img.Bounds().Dy())
}

func (cv *canvas) fill(c color.Color, clip image.Rectangle) {
	cv.z.Draw(cv.img, clip, image.NewUniform(c), clip.Min)
}

// segment adds a stroked segment as a quad. All quads share one winding
// so overlapping segments in a single path never cancel out.
func (cv *canvas) segment(x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	cv.z.MoveTo(x0+nx, y0+ny)
	cv.z.LineTo(x1+nx, y1+ny)
	cv.z.LineTo(x1-nx, y1-ny)
	cv.z.LineTo(x0-nx, y0-ny)
	cv.z.ClosePath()
}

func (cv *canvas) dashed(x0, y0, x1, y1, width float32) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	ux, uy := dx/l, dy/l
	for s := 0.0; s < l; s += dashLen + gapLen {
		e := math.Min(s+dashLen, l)
		cv.segment(
			x0+float32(ux*s), y0+float32(uy*s),
			x0+float32(ux*e), y0+float32(uy*e),
			width,
		)
	}
}

func (cv *canvas) circle(cx, cy, r float32) {
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			cv.z.MoveTo(x, y)
		} else {
			cv.z.LineTo(x, y)
		}
	}
	cv.z.ClosePath()
}

func (cv *canvas) triangle(tip, dir model.Point, size float32) {
	// tip and dir are in pixel space
	bx := float32(tip.X - dir.X*float64(size))
	by := float32(tip.Y - dir.Y*float64(size))
	px, py := float32(-dir.Y)*size/2, float32(dir.X)*size/2
	cv.z.MoveTo(float32(tip.X), float32(tip.Y))
	cv.z.LineTo(bx+px, by+py)
	cv.z.LineTo(bx-px, by-py)
	cv.z.ClosePath()
}

func (cv *canvas) text(s string, x, y int, c color.Color, bold bool) {
	d := &font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
	if bold {
		d.Dot = fixed.P(x+1, y)
		d.DrawString(s)
	}
}

// centeredText draws s with its visual center at (x, y).
func (cv *canvas) centeredText(s string, x, y float32, c color.Color, bold bool) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Round()
	m := face.Metrics()
	h := (m.Ascent - m.Descent).Round()
	cv.text(s, int(x)-w/2, int(y)+h/2, c, bold)
}

// Rasterize draws the scene: dashed grid, frame, streamlines with
// arrowheads, then charge markers on top.
func Rasterize(scene Scene, opts Options) *image.RGBA {
	opts.View = scene.View
	cv := newCanvas(opts)

	cv.drawAxes(opts)
	cv.drawStreamlines(scene.Streamlines, opts)
	cv.drawMarkers(scene.Markers)
	if scene.Title != "" {
		cv.centeredText(scene.Title, float32(opts.Width)/2, float32(marginTop)/2, Black, true)
	}
	return cv.img
}

func (cv *canvas) drawAxes(opts Options) {
	a := cv.area
	ax0, ay0 := float32(a.Min.X), float32(a.Min.Y)
	ax1, ay1 := float32(a.Max.X), float32(a.Max.Y)

	xs := ticks(cv.view.XMin, cv.view.XMax)
	ys := ticks(cv.view.YMin, cv.view.YMax)

	if opts.GridLines {
		cv.begin()
		for _, v := range xs {
			x, _ := cv.toPixel(model.Point{X: v, Y: cv.view.YMin})
			cv.dashed(x, ay0, x, ay1, 1)
		}
		for _, v := range ys {
			_, y := cv.toPixel(model.Point{X: cv.view.XMin, Y: v})
			cv.dashed(ax0, y, ax1, y, 1)
		}
		cv.fill(Gray, a)
	}

	cv.begin()
	cv.segment(ax0, ay0, ax1, ay0, 1)
	cv.segment(ax1, ay0, ax1, ay1, 1)
	cv.segment(ax1, ay1, ax0, ay1, 1)
	cv.segment(ax0, ay1, ax0, ay0, 1)
	for _, v := range xs {
		x, _ := cv.toPixel(model.Point{X: v, Y: cv.view.YMin})
		cv.segment(x, ay1, x, ay1+4, 1)
	}
	for _, v := range ys {
		_, y := cv.toPixel(model.Point{X: cv.view.XMin, Y: v})
		cv.segment(ax0-4, y, ax0, y, 1)
	}
	cv.fill(Black, cv.img.Bounds())

	for _, v := range xs {
		x, _ := cv.toPixel(model.Point{X: v, Y: cv.view.YMin})
		cv.centeredText(formatTick(v), x, ay1+14, Black, false)
	}
	for _, v := range ys {
		_, y := cv.toPixel(model.Point{X: cv.view.XMin, Y: v})
		label := formatTick(v)
		w := font.MeasureString(basicfont.Face7x13, label).Round()
		cv.text(label, int(ax0)-8-w, int(y)+4, Black, false)
	}
	cv.centeredText("x", (ax0+ax1)/2, ay1+32, Black, false)
	cv.centeredText("y", ax0-44, (ay0+ay1)/2, Black, false)
}

func (cv *canvas) drawStreamlines(lines []Streamline, opts Options) {
	w := float32(opts.LineWidth)
	cv.begin()
	for _, s := range lines {
		for i := 1; i < len(s.Points); i++ {
			x0, y0 := cv.toPixel(s.Points[i-1])
			x1, y1 := cv.toPixel(s.Points[i])
			cv.segment(x0, y0, x1, y1, w)
		}
	}
	cv.fill(opts.LineColor, cv.area)

	if !opts.Arrows {
		return
	}
	cv.begin()
	for _, s := range lines {
		mid, dir, ok := s.Midpoint()
		if !ok {
			continue
		}
		px, py := cv.toPixel(mid)
		// flip y for pixel space
		d := model.Point{X: dir.X * cv.sx, Y: -dir.Y * cv.sy}
		n := d.Norm()
		if n == 0 {
			continue
		}
		cv.triangle(model.Point{X: float64(px), Y: float64(py)}, d.Scale(1/n), arrowSize)
	}
	cv.fill(opts.LineColor, cv.area)
}

func (cv *canvas) drawMarkers(markers []Marker) {
	for _, m := range markers {
		cx, cy := cv.toPixel(m.Center)
		r := float32(m.Radius * math.Min(cv.sx, cv.sy))
		cv.begin()
		cv.circle(cx, cy, r)
		cv.fill(m.Fill, cv.area)
		cv.centeredText(m.Label, cx, cy, m.LabelColor, true)
	}
}

// ticks picks round tick positions covering [lo, hi], aiming for about 8 intervals.
func ticks(lo, hi float64) []float64 {
	step := niceStep((hi - lo) / 8)
	if step <= 0 {
		return nil
	}
	var out []float64
	start := math.Ceil(lo/step-1e-9) * step
	for v := start; v <= hi+step*1e-9; v += step {
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	frac := raw / exp
	switch {
	case frac <= 1:
		return exp
	case frac <= 2:
		return 2 * exp
	case frac <= 2.5:
		return 2.5 * exp
	case frac <= 5:
		return 5 * exp
	default:
		return 10 * exp
	}
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
