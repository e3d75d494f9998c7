package main

import (
	"strconv"

	"github.com/minikomi/keysynth/internal/keyboard"
	"github.com/minikomi/keysynth/internal/layout"
	"github.com/minikomi/keysynth/internal/note"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var (
	red   = sdl.Color{R: 225, G: 30, B: 30, A: 255}
	gray  = sdl.Color{R: 150, G: 150, B: 150, A: 255}
	white = sdl.Color{R: 250, G: 250, B: 250, A: 255}
	dark  = sdl.Color{R: 50, G: 50, B: 50, A: 255}
	bg    = sdl.Color{R: 225, G: 225, B: 225, A: 255}
)

func sdlRect(r layout.Rect) sdl.Rect {
	return sdl.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func setColor(renderer *sdl.Renderer, c sdl.Color) {
	renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

func drawLabel(renderer *sdl.Renderer, font *ttf.Font, text string, x int32, c sdl.Color) {
	solid, err := font.RenderUTF8Solid(text, c)
	if err != nil {
		return
	}
	defer solid.Free()

	texture, err := renderer.CreateTextureFromSurface(solid)
	if err != nil {
		return
	}
	defer texture.Destroy()

	dst := sdl.Rect{X: x, Y: 0, W: solid.W, H: solid.H}
	renderer.Copy(texture, nil, &dst)
}

func fillKey(renderer *sdl.Renderer, p note.Pitch, c sdl.Color) sdl.Rect {
	r, _ := layout.KeyRect(p)
	rect := sdlRect(r)
	setColor(renderer, c)
	renderer.FillRect(&rect)
	return rect
}

// Draw renders the piano with held keys in red and the home-row range
// underlined. font may be nil, in which case octaves are not labelled.
func Draw(renderer *sdl.Renderer, font *ttf.Font, kb *keyboard.Keyboard, pressed func(note.Pitch) bool) {
	setColor(renderer, bg)
	renderer.Clear()

	for o := layout.FirstOctave; o < layout.FirstOctave+layout.NumOctaves; o++ {
		if font != nil {
			c := gray
			if o == kb.Octave {
				c = red
			}
			drawLabel(renderer, font, strconv.Itoa(o), layout.OctaveLeft(o)+2, c)
		}

		for _, name := range layout.WhiteNames {
			p := note.Pitch{Name: name, Octave: o}
			c := white
			if pressed(p) {
				c = red
			}
			rect := fillKey(renderer, p, c)
			setColor(renderer, dark)
			renderer.DrawRect(&rect)
		}

		for _, name := range layout.BlackNames {
			p := note.Pitch{Name: name, Octave: o}
			c := dark
			if pressed(p) {
				c = red
			}
			fillKey(renderer, p, c)
		}
	}

	marker := sdlRect(layout.Marker(kb.Octave))
	setColor(renderer, red)
	renderer.FillRect(&marker)

	renderer.Present()
}
