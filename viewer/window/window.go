// Package window shows a rendered chart in a desktop window.
package window

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// RenderFunc rasterises the scene at the given pixel size.
type RenderFunc func(width, height int) (image.Image, error)

// Config sets up the window.
type Config struct {
	Title  string
	Width  int
	Height int
}

// DefaultConfig matches the size of the grades demo.
var DefaultConfig = Config{
	Title:  "Polynomial Regression",
	Width:  800,
	Height: 600,
}

// Run opens a resizable window and blocks until it is closed or Escape is
// pressed. The scene is re-rendered whenever the window size changes.
// The window is torn down before Run returns, including on render errors.
func Run(cfg Config, render RenderFunc) error {
	if render == nil {
		return errors.NewValidationError("render", "must not be nil", nil)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return errors.NewValidationError("size", "width and height must be positive", [2]int{cfg.Width, cfg.Height})
	}

	logger := log.GetLoggerWithName("window")
	g := &session{render: render, logger: logger}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)

	logger.Info("Window opened", log.PhaseKey, log.PhaseVisualization, "width", cfg.Width, "height", cfg.Height)
	defer logger.Info("Window closed", log.PhaseKey, log.PhaseVisualization)

	err := ebiten.RunGame(g)
	g.release()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "run window")
	}
	return nil
}

// session owns the GPU image of the current frame.
type session struct {
	render RenderFunc
	logger log.Logger

	width, height int
	frame         *ebiten.Image
	err           error
}

func (s *session) Update() error {
	if s.err != nil {
		return s.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (s *session) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if s.frame == nil || b.Dx() != s.width || b.Dy() != s.height {
		img, err := s.render(b.Dx(), b.Dy())
		if err != nil {
			s.err = errors.Wrap(err, "render frame")
			return
		}
		s.release()
		s.frame = ebiten.NewImageFromImage(img)
		s.width, s.height = b.Dx(), b.Dy()
		s.logger.Debug("Frame rendered", log.OperationKey, log.OperationRender, "width", s.width, "height", s.height)
	}
	screen.DrawImage(s.frame, nil)
}

func (s *session) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (s *session) release() {
	if s.frame != nil {
		s.frame.Deallocate()
		s.frame = nil
	}
}
