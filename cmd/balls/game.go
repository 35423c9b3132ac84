package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/libes/ecs/debugui"
	debugui_ebiten "github.com/plus3/libes/ecs/debugui/ebiten"
	"github.com/plus3/libes/internal/balls"
)

var background = color.NRGBA{R: 0x20, G: 0x22, B: 0x2a, A: 0xff}

// Game implements ebiten.Game. The world draws on an offscreen canvas
// during Update, Draw only copies it to the screen.
type Game struct {
	world  *balls.World
	canvas *canvas
	delta  float64

	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.imguiBackend == nil {
		g.world.Update(g.delta)
		return nil
	}
	g.imguiBackend.Frame(func() {
		g.world.Update(g.delta)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas.img, nil)
	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	bounds := g.canvas.img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// mouse reads the ebiten input state. Clicks captured by the debug overlay
// are ignored.
type mouse struct {
	overlay *debugui.ImguiSystem
}

func (in mouse) Cursor() (int, int) {
	return ebiten.CursorPosition()
}

func (in mouse) Clicked() (left, right bool) {
	if in.overlay != nil && in.overlay.InputState().WantCaptureMouse {
		return false, false
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

// canvas draws on an offscreen ebiten image.
type canvas struct {
	img *ebiten.Image
}

func newCanvas(width, height int) *canvas {
	return &canvas{img: ebiten.NewImage(width, height)}
}

func (c *canvas) Clear() {
	c.img.Fill(background)
}

func (c *canvas) Circle(x, y, r float32, clr color.NRGBA) {
	vector.DrawFilledCircle(c.img, x, y, r, clr, true)
}

func (c *canvas) Ring(x, y, r float32, clr color.NRGBA) {
	vector.StrokeCircle(c.img, x, y, r, 2, clr, true)
}

func (c *canvas) Rect(x, y, w, h float32, clr color.NRGBA) {
	vector.DrawFilledRect(c.img, x, y, w, h, clr, false)
}

func (c *canvas) Line(x0, y0, x1, y1 float32, clr color.NRGBA) {
	vector.StrokeLine(c.img, x0, y0, x1, y1, 1, clr, true)
}

func (c *canvas) Text(s string) {
	ebitenutil.DebugPrint(c.img, s)
}
