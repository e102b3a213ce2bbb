package host

import (
	"fmt"
	"image"
	"image/draw"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/tool"
)

type promptState = tool.TextInput

// Prompt collects text input with a modal overlay. It pumps the window's
// event queue itself so it can block until the user confirms with Enter or
// cancels with Escape, which is how the text tool expects to be answered.
func (v *Viewer) Prompt(defaults tool.TextInput) (tool.TextInput, bool) {
	v.promptActive = true
	v.promptInput = defaults
	v.promptInput.Content = ""
	defer func() {
		v.promptActive = false
		v.repaint()
	}()
	v.paint()

	for {
		switch e := v.win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return tool.TextInput{}, false
			}
		case size.Event:
			v.resize(e.WidthPx, e.HeightPx)
		case paint.Event:
			v.paint()
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if done, ok := v.promptKey(e); done {
				return v.promptInput, ok
			}
			v.paint()
		}
	}
}

// promptKey applies one key press to the prompt. done reports that the
// prompt is finished; ok whether it was confirmed.
func (v *Viewer) promptKey(e key.Event) (done, ok bool) {
	switch e.Code {
	case key.CodeReturnEnter:
		return true, true
	case key.CodeEscape:
		return true, false
	case key.CodeDeleteBackspace:
		if len(v.promptInput.Content) > 0 {
			r := []rune(v.promptInput.Content)
			v.promptInput.Content = string(r[:len(r)-1])
		}
		return false, false
	}

	if e.Modifiers&key.ModControl != 0 {
		switch e.Rune {
		case 'b':
			v.promptInput.Bold = !v.promptInput.Bold
		case 'i':
			v.promptInput.Italic = !v.promptInput.Italic
		case '+', '=':
			v.promptInput.Size = annotation.ClampTextSize(v.promptInput.Size + 2)
		case '-':
			v.promptInput.Size = annotation.ClampTextSize(v.promptInput.Size - 2)
		}
		return false, false
	}

	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		v.promptInput.Content += string(e.Rune)
	}
	return false, false
}

func (v *Viewer) drawPrompt(dst *image.RGBA) {
	status := fmt.Sprintf("%gpt", v.promptInput.Size)
	if v.promptInput.Bold {
		status += " bold"
	}
	if v.promptInput.Italic {
		status += " italic"
	}
	line := "Text: " + v.promptInput.Content + "_"
	hint := "Enter confirms, Esc cancels, Ctrl+B/I style, Ctrl+-/+ size (" + status + ")"

	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(line).Ceil()
	if hw := d.MeasureString(hint).Ceil(); hw > w {
		w = hw
	}
	box := image.Rect(v.winW/2-w/2-10, v.winH/2-26, v.winW/2+w/2+10, v.winH/2+26)
	draw.Draw(dst, box, &image.Uniform{v.th.ToolbarBackground}, image.Point{}, draw.Src)
	outlineRect(dst, box, v.th.ButtonBorder)

	d.Dst = dst
	d.Src = image.NewUniform(v.th.Foreground)
	d.Dot = fixed.P(box.Min.X+10, box.Min.Y+18)
	d.DrawString(line)
	d.Dot = fixed.P(box.Min.X+10, box.Min.Y+38)
	d.DrawString(hint)
}
