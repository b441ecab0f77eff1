package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	backdropColor = color.NRGBA{R: 0x1d, G: 0x2b, B: 0x38, A: 0xff}
	textColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	trackColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
	errorColor    = color.NRGBA{R: 0xff, G: 0x9a, B: 0x8a, A: 0xff}
	iconColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe0}
	iconHover     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Loader geometry in screen coordinates, relative to the viewport center.
const (
	barWidth   = 240
	barHeight  = 4
	barOffset  = 8
	textOffset = 16
	// contentAbove and contentBelow bound the text, bar and error message.
	contentAbove = 60
	contentBelow = 40

	// soundBarStep quantizes the bar animation so the raster only changes at this rate.
	soundBarStep = 100 * time.Millisecond
)

// Painter rasterizes the loader and buttons into an RGBA image sized to the
// framebuffer. Sizes are given in screen coordinates and multiplied by the scale.
type Painter struct {
	font   *opentype.Font
	size   float64
	scale  float64
	face   font.Face
	img    *image.RGBA
	raster *vector.Rasterizer
	last   paintKey
	drawn  bool
}

type paintKey struct {
	w, h       int
	scale      float64
	version    uint64
	content    uint8
	wrapper    uint8
	buttons    Buttons
	soundFrame int64
}

// NewPainter uses the bundled Go Regular face.
func NewPainter(fontSize float64) (*Painter, error) {
	return NewPainterWithFont(goregular.TTF, fontSize)
}

// NewPainterWithFont parses a TrueType or OpenType font.
func NewPainterWithFont(ttf []byte, fontSize float64) (*Painter, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	p := &Painter{font: f, size: fontSize, raster: &vector.Rasterizer{}}
	if err := p.SetScale(1); err != nil {
		return nil, err
	}
	return p, nil
}

// SetScale sets framebuffer pixels per screen coordinate and rebuilds the face
// when it changed. Non-positive scales count as 1.
func (p *Painter) SetScale(scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	if p.face != nil && scale == p.scale {
		return nil
	}
	face, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    p.size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create face: %w", err)
	}
	if p.face != nil {
		p.face.Close()
	}
	p.face = face
	p.scale = scale
	return nil
}

func (p *Painter) Scale() float64 {
	return p.scale
}

// Paint redraws what changed since the last call and returns the image with the
// changed region. An empty region means nothing visible changed. When only the
// sound bars moved, just the sound button is repainted.
func (p *Painter) Paint(loader *Loader, buttons *Buttons, width, height int, since time.Duration, now time.Time) (*image.RGBA, image.Rectangle) {
	if width <= 0 || height <= 0 {
		return p.img, image.Rectangle{}
	}
	key := paintKey{
		w:       width,
		h:       height,
		scale:   p.scale,
		version: loader.Version(),
		content: alpha8(loader.ContentAlpha(now)),
		wrapper: alpha8(loader.WrapperAlpha(now)),
		buttons: *buttons,
	}
	if !buttons.SoundPaused {
		key.soundFrame = int64(since / soundBarStep)
	}
	if p.drawn && key == p.last {
		return p.img, image.Rectangle{}
	}

	if p.drawn && p.onlySoundFrameChanged(key) {
		r := buttons.Rect(SoundButton, width, height)
		if !r.Overlaps(p.contentRect(width, height)) {
			p.repaintSound(buttons, key, r)
			p.last = key
			return p.img, r
		}
	}

	if p.img == nil || p.img.Bounds().Dx() != width || p.img.Bounds().Dy() != height {
		p.img = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	draw.Draw(p.img, p.img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	if key.wrapper > 0 || key.content > 0 {
		p.paintLoader(loader, key)
	}
	p.paintButtons(buttons, key)

	p.last = key
	p.drawn = true
	return p.img, p.img.Bounds()
}

func (p *Painter) onlySoundFrameChanged(key paintKey) bool {
	prev := p.last
	prev.soundFrame = key.soundFrame
	return prev == key
}

// contentRect is the band the loader text, bar and error message can occupy.
func (p *Painter) contentRect(width, height int) image.Rectangle {
	cy := height / 2
	return image.Rect(0, cy-scaled(contentAbove, p.scale), width, cy+scaled(contentBelow, p.scale))
}

// repaintSound redraws the backdrop and the sound icon inside r only.
func (p *Painter) repaintSound(buttons *Buttons, key paintKey, r image.Rectangle) {
	draw.Draw(p.img, r, image.Transparent, image.Point{}, draw.Src)
	if key.wrapper > 0 {
		fill(p.img, r, withAlpha(backdropColor, key.wrapper))
	}
	p.soundIcon(r, buttons.SoundPaused, key.soundFrame, buttonColor(buttons, SoundButton))
}

func (p *Painter) paintLoader(loader *Loader, key paintKey) {
	if key.wrapper > 0 {
		fill(p.img, p.img.Bounds(), withAlpha(backdropColor, key.wrapper))
	}
	if key.content == 0 {
		return
	}
	cx, cy := key.w/2, key.h/2

	if err := loader.Err(); err != nil {
		p.text(err.Error(), cx, cy, withAlpha(errorColor, key.content))
		return
	}

	p.text(fmt.Sprintf("%d%%", loader.Percent()), cx, cy-scaled(textOffset, key.scale), withAlpha(textColor, key.content))

	halfBar := scaled(barWidth, key.scale) / 2
	top := cy + scaled(barOffset, key.scale)
	track := image.Rect(cx-halfBar, top, cx+halfBar, top+scaled(barHeight, key.scale))
	fill(p.img, track, withAlpha(trackColor, key.content))
	filled := track
	filled.Max.X = track.Min.X + int(math.Round(loader.Fill()*float64(track.Dx())))
	fill(p.img, filled, withAlpha(textColor, key.content))
}

func (p *Painter) paintButtons(buttons *Buttons, key paintKey) {
	for _, id := range []ButtonID{FullscreenButton, SoundButton} {
		r := buttons.Rect(id, key.w, key.h)
		c := buttonColor(buttons, id)
		switch id {
		case FullscreenButton:
			p.fullscreenIcon(r, buttons.Fullscreen, c)
		case SoundButton:
			p.soundIcon(r, buttons.SoundPaused, key.soundFrame, c)
		}
	}
}

func buttonColor(buttons *Buttons, id ButtonID) color.NRGBA {
	if buttons.Hovered == id {
		return iconHover
	}
	return iconColor
}

// fullscreenIcon draws four corner brackets, pointing outwards to enter and
// inwards to exit.
func (p *Painter) fullscreenIcon(r image.Rectangle, active bool, c color.Color) {
	arm, th, inset := scaled(12, p.scale), scaled(3, p.scale), scaled(6, p.scale)
	x0, y0 := r.Min.X+inset, r.Min.Y+inset
	x1, y1 := r.Max.X-inset, r.Max.Y-inset
	corners := []struct{ x, y, dx, dy int }{
		{x0, y0, 1, 1}, {x1, y0, -1, 1}, {x0, y1, 1, -1}, {x1, y1, -1, -1},
	}
	for _, k := range corners {
		hx, vy := k.dx, k.dy
		if active {
			// Exit icon: the bracket opens away from the corner.
			hx, vy = -hx, -vy
			k.x += k.dx * arm
			k.y += k.dy * arm
		}
		fill(p.img, span(k.x, k.y, k.x+hx*arm, k.y+vy*th), c)
		fill(p.img, span(k.x, k.y, k.x+hx*th, k.y+vy*arm), c)
	}
}

// soundIcon draws four vertical bars. Playing bars bounce with the frame counter.
// The rasterizer covers the visible part of r only.
func (p *Painter) soundIcon(r image.Rectangle, paused bool, frame int64, c color.Color) {
	clip := r.Intersect(p.img.Bounds())
	if clip.Empty() {
		return
	}
	const bars = 4
	bw, gap, pad := scaled(4, p.scale), scaled(4, p.scale), scaled(10, p.scale)
	total := bars*bw + (bars-1)*gap
	// raster coordinates are relative to clip.Min
	ox := float32(r.Min.X - clip.Min.X)
	oy := float32(r.Min.Y - clip.Min.Y)
	x := ox + float32((r.Dx()-total)/2)
	base := oy + float32(r.Dy()-pad)
	minH := float32(scaled(3, p.scale))
	maxH := float32(r.Dy() - 2*pad)

	p.raster.Reset(clip.Dx(), clip.Dy())
	for i := 0; i < bars; i++ {
		h := minH
		if !paused {
			phase := float64(frame)*0.9 + float64(i)*1.7
			h = minH + (maxH-minH)*float32(0.5+0.5*math.Sin(phase))
		}
		bx := x + float32(i*(bw+gap))
		p.raster.MoveTo(bx, base)
		p.raster.LineTo(bx+float32(bw), base)
		p.raster.LineTo(bx+float32(bw), base-h)
		p.raster.LineTo(bx, base-h)
		p.raster.ClosePath()
	}
	p.raster.Draw(p.img, clip, image.NewUniform(c), image.Point{})
}

// text draws s centered horizontally on cx with its baseline at cy.
func (p *Painter) text(s string, cx, cy int, c color.Color) {
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(c),
		Face: p.face,
	}
	w := d.MeasureString(s).Round()
	d.Dot = fixed.P(cx-w/2, cy)
	d.DrawString(s)
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// span is the rectangle between two corners given in any order.
func span(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1, y1).Canon()
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = uint8(uint16(c.A) * uint16(a) / 255)
	return c
}

func alpha8(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}
