package display

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Show opens a desktop window displaying img and blocks until the window
// closes or Esc/Q is pressed.
func Show(img *image.RGBA, title string) error {
	if img == nil {
		return errors.New("display: nil image")
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(newPlotWindow(img))
}

type plotWindow struct {
	src   *image.RGBA
	frame *ebiten.Image
}

func newPlotWindow(img *image.RGBA) *plotWindow {
	return &plotWindow{src: img}
}

func (p *plotWindow) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (p *plotWindow) Draw(screen *ebiten.Image) {
	if p.frame == nil {
		b := p.src.Bounds()
		p.frame = ebiten.NewImage(b.Dx(), b.Dy())
		p.frame.WritePixels(p.src.Pix)
	}
	screen.DrawImage(p.frame, nil)
}

func (p *plotWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.src.Bounds().Dx(), p.src.Bounds().Dy()
}
