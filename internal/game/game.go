// Package game hosts the engine in an ebiten window: it ticks the engine
// from Update, replays the frame in Draw and handles keyboard and mouse
// input for file playback.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/audio-reactor/internal/audio"
	"github.com/iburimskiy/audio-reactor/internal/config"
	"github.com/iburimskiy/audio-reactor/internal/engine"
	"github.com/iburimskiy/audio-reactor/internal/render"
)

const (
	hudHeight = 36
	seekEvery = 50 * time.Millisecond
)

var (
	buttonArea = rect{x: 20, y: 44, w: 120, h: 32}

	hudBackground = color.RGBA{A: 255}
	barBackground = color.RGBA{R: 25, G: 30, B: 40, A: 255}
	barBorder     = color.RGBA{R: 70, G: 80, B: 100, A: 255}
	barFill       = color.RGBA{R: 90, G: 110, B: 200, A: 255}
)

// Game implements ebiten.Game around an engine.
type Game struct {
	eng *engine.Engine
	cfg config.Config
	log *log.Logger

	frame *render.Frame
	drawn bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	buttonHovered bool
	buttonPressed bool

	barArea     rect
	barDragging bool
	lastSeek    time.Time

	lastErr error
}

// New wraps eng. A nil logger discards messages.
func New(eng *engine.Engine, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cfg := eng.Config()
	return &Game{
		eng:     eng,
		cfg:     cfg,
		log:     logger,
		prevKey: map[ebiten.Key]bool{},
		barArea: rect{x: 20, y: cfg.Window.Height - 50, w: cfg.Window.Width - 40, h: 20},
	}
}

func (g *Game) justPressed(k ebiten.Key) bool {
	pressed := ebiten.IsKeyPressed(k)
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

func (g *Game) file() *audio.File {
	f, _ := g.eng.Source().(*audio.File)
	return f
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || g.justPressed(ebiten.KeyEscape) || g.justPressed(ebiten.KeyQ) {
		if err := g.eng.Stop(); err != nil {
			g.log.Printf("game: closing audio source: %v", err)
		}
		return ebiten.Termination
	}

	if g.justPressed(ebiten.KeySpace) {
		if f := g.file(); f != nil {
			f.TogglePause()
		}
	}
	openRequested := g.justPressed(ebiten.KeyO)

	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = buttonArea.contains(mouseX, mouseY)
	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			openRequested = true
		}
		g.buttonPressed = false
		g.barDragging = false
	}
	if openRequested {
		if err := g.openFileDialog(); err != nil {
			g.lastErr = err
			g.log.Printf("game: open file: %v", err)
		}
	}
	g.updateSeek(mouseX, mouseY)

	if frame := g.eng.Tick(); frame != nil {
		g.frame = frame
		g.drawn = false
	}
	return nil
}

func (g *Game) updateSeek(mouseX, mouseY int) {
	f := g.file()
	if f == nil {
		g.barDragging = false
		return
	}
	if g.barArea.contains(mouseX, mouseY) && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.barDragging = true
		g.lastSeek = time.Time{}
	}
	if !g.barDragging || time.Since(g.lastSeek) < seekEvery {
		return
	}
	if err := f.Seek(g.barArea.fraction(mouseX)); err != nil {
		g.lastErr = err
		return
	}
	g.lastSeek = time.Now()
}

func (g *Game) openFileDialog() error {
	path, err := audio.ChooseFile()
	if err != nil || path == "" {
		return err
	}
	src, err := audio.OpenFile(path, g.cfg.Audio.SampleRate, g.cfg.Audio.BlockSize)
	if err != nil {
		return err
	}
	if err := g.adopt(src); err != nil {
		return err
	}
	g.log.Printf("game: playing %s", path)
	return nil
}

// adopt hands src to the engine. A source the engine refuses is closed.
func (g *Game) adopt(src audio.Source) error {
	err := g.eng.SetSource(src)
	switch {
	case errors.Is(err, engine.ErrStopped), errors.Is(err, config.ErrInvalid):
		if closeErr := src.Close(); closeErr != nil {
			g.log.Printf("game: closing rejected source: %v", closeErr)
		}
		return err
	case err != nil:
		g.log.Printf("game: closing previous source: %v", err)
	}
	g.lastErr = nil
	return nil
}

func (g *Game) Draw(img *ebiten.Image) {
	if g.frame != nil && !g.drawn {
		g.frame.Replay(screen{img: img})
		g.drawn = true
	}
	g.drawButton(img)
	g.drawProgressBar(img)
	g.drawHUD(img)
}

func (g *Game) drawHUD(img *ebiten.Image) {
	vector.DrawFilledRect(img, 0, 0, float32(g.cfg.Window.Width), hudHeight, hudBackground, false)

	b := g.eng.Bands()
	line := fmt.Sprintf("%s  bass %.2f  treble %.2f  TPS %.0f", g.cfg.Name, b.Bass, b.Treble, ebiten.ActualTPS())
	if f := g.file(); f != nil {
		state := "playing"
		switch {
		case f.Done():
			state = "finished"
		case f.Paused():
			state = "paused"
		}
		line += fmt.Sprintf("  %s %s/%s", state, formatDuration(f.Position()), formatDuration(f.Duration()))
	}
	ebitenutil.DebugPrintAt(img, line, 12, 2)

	status := "O: open file  Space: play/pause  Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(img, status, 12, 18)
}

func (g *Game) drawButton(img *ebiten.Image) {
	var bg color.RGBA
	switch {
	case g.buttonPressed:
		bg = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case g.buttonHovered:
		bg = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bg = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	b := buttonArea
	vector.DrawFilledRect(img, float32(b.x), float32(b.y), float32(b.w), float32(b.h), bg, false)
	vector.StrokeRect(img, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	text := "Open File"
	textWidth := len(text) * 6
	ebitenutil.DebugPrintAt(img, text, b.x+(b.w-textWidth)/2, b.y+(b.h-16)/2)
}

func (g *Game) drawProgressBar(img *ebiten.Image) {
	f := g.file()
	if f == nil {
		return
	}
	total := f.Duration()
	if total <= 0 {
		return
	}
	pos := f.Position()
	progress := clamp01(float64(pos) / float64(total))

	b := g.barArea
	vector.DrawFilledRect(img, float32(b.x), float32(b.y), float32(b.w), float32(b.h), barBackground, false)
	if progress > 0 {
		vector.DrawFilledRect(img, float32(b.x), float32(b.y), float32(progress*float64(b.w)), float32(b.h), barFill, false)
	}
	vector.StrokeRect(img, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, barBorder, false)

	ebitenutil.DebugPrintAt(img, formatDuration(pos), b.x, b.y+b.h+4)
	totalText := formatDuration(total)
	ebitenutil.DebugPrintAt(img, totalText, b.x+b.w-len(totalText)*6, b.y+b.h+4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Run opens the window and blocks until the user quits. The screen is not
// cleared between frames; the fade command leaves trails instead.
func Run(g *Game) error {
	w := g.cfg.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title + " - O: open file, Space: play/pause, Esc/Q: quit")
	ebiten.SetTPS(w.TPS)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
