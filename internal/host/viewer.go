// Package host is the desktop adapter: a shiny viewer window that displays
// an image, forwards normalized pointer and key events to the annotation
// engine, and renders its frames. All annotation semantics live in the
// engine; this package only translates between the windowing system and it.
package host

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/config"
	"github.com/example/imagemark/internal/engine"
	"github.com/example/imagemark/internal/geometry"
	"github.com/example/imagemark/internal/notify"
	"github.com/example/imagemark/internal/theme"
)

const toolbarHeight = 62

var zoomSteps = []float64{0.25, 0.33, 0.5, 0.67, 0.75, 1, 1.25, 1.5, 2, 3, 4}

// Options configures the viewer window.
type Options struct {
	Theme    *theme.Theme
	Draw     config.Draw
	Notifier *notify.Notifier
}

// Viewer is one window editing one image.
type Viewer struct {
	path     string
	src      *image.RGBA
	eng      *engine.Engine
	th       *theme.Theme
	notifier *notify.Notifier

	win  screen.Window
	scr  screen.Screen
	buf  screen.Buffer
	winW int
	winH int

	zoom       float64
	pan        geometry.Point
	fullscreen bool

	buttons  []*CacheButton
	styleBtn *CacheButton
	arrow    annotation.ArrowStyle
	hoverBtn int
	pressBtn int

	message      string
	messageUntil time.Time

	promptActive bool
	promptInput  promptState
}

// LoadImage reads and decodes the image at path into an RGBA surface.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// Run opens path in a viewer window and blocks until it is closed.
func Run(path string, opts Options) error {
	src, err := LoadImage(path)
	if err != nil {
		return err
	}
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	v := &Viewer{
		path:     path,
		src:      src,
		th:       th,
		notifier: opts.Notifier,
		zoom:     1,
		hoverBtn: -1,
		pressBtn: -1,
		arrow:    opts.Draw.ArrowStyle,
	}
	v.eng = engine.New(src, path, v)
	v.eng.SetColor(opts.Draw.Color)
	v.eng.SetLineWidth(opts.Draw.LineWidth)
	v.eng.SetArrowStyle(opts.Draw.ArrowStyle)
	if opts.Draw.TextSize > 0 {
		v.eng.Session().SetTextDefaults(opts.Draw.TextSize, false, false)
	}

	driver.Main(v.main)
	return nil
}

func (v *Viewer) main(s screen.Screen) {
	v.scr = s
	v.winW = v.src.Bounds().Dx()
	v.winH = v.src.Bounds().Dy() + toolbarHeight

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: v.winW, Height: v.winH, Title: "imagemark - " + v.path})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	v.win = w

	v.buildToolbar()
	v.layoutToolbar()
	v.updateViewport()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			v.resize(e.WidthPx, e.HeightPx)
		case paint.Event:
			v.paint()
		case mouse.Event:
			v.handleMouse(e)
		case key.Event:
			if quit := v.handleKey(e); quit {
				return
			}
		}
	}
}

func (v *Viewer) resize(w, h int) {
	if w == v.winW && h == v.winH && v.buf != nil {
		return
	}
	v.winW, v.winH = w, h
	if v.buf != nil {
		v.buf.Release()
		v.buf = nil
	}
	if w > 0 && h > 0 {
		buf, err := v.scr.NewBuffer(image.Point{w, h})
		if err != nil {
			log.Printf("new buffer: %v", err)
			return
		}
		v.buf = buf
	}
	v.layoutToolbar()
	v.repaint()
}

func (v *Viewer) repaint() {
	if v.win != nil {
		v.win.Send(paint.Event{})
	}
}

// visibleToolbarHeight is the height reserved for the toolbar in the current
// viewport state; zero when the engine says the controls are hidden.
func (v *Viewer) visibleToolbarHeight() int {
	if v.eng.ToolbarVisible() {
		return toolbarHeight
	}
	return 0
}

func (v *Viewer) updateViewport() {
	off := geometry.Pt(v.pan.X, v.pan.Y+float64(v.visibleToolbarHeight()))
	v.eng.SetViewport(v.zoom, off)
}

func (v *Viewer) setZoom(z float64) {
	if z == v.zoom {
		return
	}
	v.zoom = z
	v.eng.SetViewport(v.zoom, geometry.Pt(v.pan.X, v.pan.Y))
	// Toolbar visibility may have flipped with the zoom, moving the image
	// origin.
	v.updateViewport()
	v.repaint()
}

func (v *Viewer) zoomStep(dir int) {
	idx := 0
	best := -1.0
	for i, z := range zoomSteps {
		d := z - v.zoom
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(zoomSteps) {
		idx = len(zoomSteps) - 1
	}
	v.setZoom(zoomSteps[idx])
}

func (v *Viewer) toggleFullscreen() {
	v.fullscreen = !v.fullscreen
	v.eng.SetFullscreen(v.fullscreen)
	v.updateViewport()
	v.repaint()
}

func (v *Viewer) flash(msg string) {
	v.message = msg
	v.messageUntil = time.Now().Add(2 * time.Second)
	v.repaint()
}

func (v *Viewer) save() {
	dest, err := v.eng.ExportFile()
	if err != nil {
		log.Printf("save: %v", err)
		v.flash("Save failed")
		return
	}
	v.flash("Saved " + dest)
	v.notifier.Save(dest)
}

func (v *Viewer) copyToClipboard() {
	if err := v.eng.ExportClipboard(); err != nil {
		log.Printf("copy: %v", err)
		v.flash("Copy failed")
		return
	}
	v.flash("Copied to clipboard")
	v.notifier.Copy(v.path)
}

func (v *Viewer) cycleArrowStyle() {
	v.arrow = annotation.ArrowStyle((int(v.arrow) + 1) % len(annotation.ArrowStyleNames))
	v.eng.SetArrowStyle(v.arrow)
	if v.styleBtn != nil {
		v.styleBtn.Button.(*LabelButton).label = "Y:" + v.arrow.String()
		v.styleBtn.Invalidate()
	}
}

func (v *Viewer) buildToolbar() {
	tools := []struct {
		label string
		kind  annotation.Kind
	}{
		{"A:Arrow", annotation.KindArrow},
		{"N:Dot", annotation.KindDot},
		{"X:Rect", annotation.KindRect},
		{"O:Circle", annotation.KindCircle},
		{"T:Text", annotation.KindText},
	}
	for _, t := range tools {
		kind := t.kind
		v.buttons = append(v.buttons, &CacheButton{Button: &LabelButton{
			label: t.label,
			theme: v.th,
			active: func() bool {
				k, ok := v.eng.Session().ActiveTool()
				return ok && k == kind
			},
			action: func() { v.eng.SelectTool(kind) },
		}})
	}

	actions := []struct {
		label  string
		action func()
	}{
		{"U:Undo", func() { v.eng.Undo() }},
		{"R:Redo", func() { v.eng.Redo() }},
		{"K:Clear", v.eng.Clear},
		{"S:Save", v.save},
		{"C:Copy", v.copyToClipboard},
	}
	for _, a := range actions {
		v.buttons = append(v.buttons, &CacheButton{Button: &LabelButton{
			label: a.label, theme: v.th, action: a.action,
		}})
	}

	v.styleBtn = &CacheButton{Button: &LabelButton{
		label:  "Y:" + v.arrow.String(),
		theme:  v.th,
		action: v.cycleArrowStyle,
	}}
	v.buttons = append(v.buttons, v.styleBtn)

	for _, p := range Palette() {
		col := p.Color
		v.buttons = append(v.buttons, &CacheButton{Button: &Swatch{
			color:  col,
			theme:  v.th,
			active: func() bool { return v.eng.Session().Color() == col },
			action: func() { v.eng.SetColor(col) },
		}})
	}

	for _, w := range annotation.LineWidths {
		width := w
		v.buttons = append(v.buttons, &CacheButton{Button: &LabelButton{
			label:  fmt.Sprintf("%d", width),
			theme:  v.th,
			active: func() bool { return v.eng.Session().LineWidth() == width },
			action: func() { v.eng.SetLineWidth(width) },
		}})
	}
}

// layoutToolbar places the buttons in two rows: tools and actions in the
// first, color swatches and stroke widths in the second.
func (v *Viewer) layoutToolbar() {
	d := &font.Drawer{Face: basicfont.Face7x13}
	x := 2
	i := 0
	for ; i < len(v.buttons); i++ {
		lb, ok := v.buttons[i].Button.(*LabelButton)
		if !ok {
			break
		}
		w := d.MeasureString(lb.label).Ceil() + 10
		v.buttons[i].SetRect(image.Rect(x, 2, x+w, 28))
		x += w + 2
	}

	x = 2
	for ; i < len(v.buttons); i++ {
		if _, ok := v.buttons[i].Button.(*Swatch); !ok {
			break
		}
		v.buttons[i].SetRect(image.Rect(x, 32, x+22, 54))
		x += 24
	}
	x += 8
	for ; i < len(v.buttons); i++ {
		v.buttons[i].SetRect(image.Rect(x, 32, x+22, 54))
		x += 24
	}
}

func (v *Viewer) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))

	if e.Direction == mouse.DirPress && (e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown) {
		if e.Button == mouse.ButtonWheelUp {
			v.zoomStep(1)
		} else {
			v.zoomStep(-1)
		}
		return
	}

	if v.promptActive {
		return
	}

	if v.eng.ToolbarVisible() && p.Y < toolbarHeight {
		v.hoverBtn = -1
		for i, b := range v.buttons {
			if p.In(b.Rect()) {
				v.hoverBtn = i
				break
			}
		}
		switch {
		case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
			v.pressBtn = v.hoverBtn
		case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
			if v.pressBtn >= 0 && v.pressBtn == v.hoverBtn {
				v.buttons[v.pressBtn].Activate()
			}
			v.pressBtn = -1
		}
		v.repaint()
		return
	}
	v.hoverBtn = -1

	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		v.eng.PointerDown(geometry.Pt(float64(e.X), float64(e.Y)))
		v.repaint()
	case e.Direction == mouse.DirNone:
		v.eng.PointerMove(geometry.Pt(float64(e.X), float64(e.Y)))
		if v.eng.Session().Gesturing() {
			v.repaint()
		}
	}
}

func (v *Viewer) handleKey(e key.Event) (quit bool) {
	if e.Direction != key.DirPress {
		return false
	}

	const panStep = 40
	switch e.Code {
	case key.CodeEscape:
		v.eng.Deselect()
		v.repaint()
		return false
	case key.CodeLeftArrow:
		v.pan.X += panStep
	case key.CodeRightArrow:
		v.pan.X -= panStep
	case key.CodeUpArrow:
		v.pan.Y += panStep
	case key.CodeDownArrow:
		v.pan.Y -= panStep
	}
	switch e.Code {
	case key.CodeLeftArrow, key.CodeRightArrow, key.CodeUpArrow, key.CodeDownArrow:
		v.updateViewport()
		v.repaint()
		return false
	}

	if e.Modifiers&key.ModControl != 0 {
		switch e.Rune {
		case 'z':
			if e.Modifiers&key.ModShift != 0 {
				v.eng.Redo()
			} else {
				v.eng.Undo()
			}
			v.repaint()
		case 'y':
			v.eng.Redo()
			v.repaint()
		}
		return false
	}

	switch e.Rune {
	case 'a':
		v.eng.SelectTool(annotation.KindArrow)
	case 'n':
		v.eng.SelectTool(annotation.KindDot)
	case 'x':
		v.eng.SelectTool(annotation.KindRect)
	case 'o':
		v.eng.SelectTool(annotation.KindCircle)
	case 't':
		v.eng.SelectTool(annotation.KindText)
	case 'y':
		v.cycleArrowStyle()
	case 'u':
		v.eng.Undo()
	case 'r':
		v.eng.Redo()
	case 'k':
		v.eng.Clear()
	case 's':
		v.save()
	case 'c':
		v.copyToClipboard()
	case 'f':
		v.toggleFullscreen()
		return false
	case '+', '=':
		v.zoomStep(1)
		return false
	case '-':
		v.zoomStep(-1)
		return false
	case '0':
		v.pan = geometry.Point{}
		v.setZoom(1)
		return false
	case 'q':
		return true
	default:
		return false
	}
	v.repaint()
	return false
}

func (v *Viewer) paint() {
	if v.buf == nil {
		return
	}
	dst := v.buf.RGBA()
	draw.Draw(dst, dst.Bounds(), &image.Uniform{v.th.Background}, image.Point{}, draw.Src)

	tbh := v.visibleToolbarHeight()
	b := v.src.Bounds()
	dw := int(float64(b.Dx()) * v.zoom)
	dh := int(float64(b.Dy()) * v.zoom)
	origin := image.Pt(int(v.pan.X), tbh+int(v.pan.Y))
	target := image.Rect(origin.X, origin.Y, origin.X+dw, origin.Y+dh)
	if v.zoom == 1 {
		draw.Draw(dst, target, v.src, b.Min, draw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, target, v.src, b, xdraw.Src, nil)
	}

	v.eng.Frame(dst)

	if tbh > 0 {
		draw.Draw(dst, image.Rect(0, 0, v.winW, tbh), &image.Uniform{v.th.ToolbarBackground}, image.Point{}, draw.Src)
		for i, btn := range v.buttons {
			state := StateDefault
			switch i {
			case v.pressBtn:
				state = StatePressed
			case v.hoverBtn:
				state = StateHover
			}
			// Selection highlights depend on live engine state, so skip
			// the cache for active buttons.
			btn.Invalidate()
			btn.Draw(dst, state)
		}
	}

	if v.message != "" && time.Now().Before(v.messageUntil) {
		v.drawMessage(dst, v.message)
	}
	if v.promptActive {
		v.drawPrompt(dst)
	}

	v.win.Upload(image.Point{}, v.buf, v.buf.Bounds())
	v.win.Publish()
}

func (v *Viewer) drawMessage(dst *image.RGBA, msg string) {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(msg).Ceil()
	box := image.Rect(v.winW/2-w/2-8, v.winH/2-16, v.winW/2+w/2+8, v.winH/2+16)
	draw.Draw(dst, box, &image.Uniform{v.th.ToolbarBackground}, image.Point{}, draw.Src)
	outlineRect(dst, box, v.th.ButtonBorder)
	d.Dst = dst
	d.Src = image.NewUniform(v.th.Foreground)
	d.Dot = fixed.P(box.Min.X+8, box.Min.Y+20)
	d.DrawString(msg)
}
