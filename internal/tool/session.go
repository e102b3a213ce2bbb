// Package tool tracks the active annotation tool and the in-progress
// multi-click gesture that eventually commits an annotation to the store.
package tool

import (
	"image/color"
	"log"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/geometry"
)

// TextInput is what the prompt collaborator returns for a text annotation.
type TextInput struct {
	Content string
	Bold    bool
	Italic  bool
	Size    float64
}

// Prompter collects text annotation input from the user. Prompt blocks until
// the user confirms or cancels; ok is false on cancellation.
type Prompter interface {
	Prompt(defaults TextInput) (input TextInput, ok bool)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(defaults TextInput) (TextInput, bool)

func (f PrompterFunc) Prompt(defaults TextInput) (TextInput, bool) { return f(defaults) }

// Session holds the selected tool, the current style settings and any
// partially specified gesture. It never outlives a gesture's annotation: a
// committed annotation belongs to the store alone.
type Session struct {
	store    *annotation.Store
	prompter Prompter

	active     annotation.Kind
	hasTool    bool
	color      color.RGBA
	lineWidth  int
	arrowStyle annotation.ArrowStyle

	// Remembered text formatting, offered as defaults on the next prompt.
	textDefaults TextInput

	pending    geometry.Point
	hasPending bool
	pointer    geometry.Point
	hasPointer bool
}

// NewSession creates a session committing into store. prompter may be nil;
// text clicks are then invalid gestures.
func NewSession(store *annotation.Store, prompter Prompter) *Session {
	return &Session{
		store:     store,
		prompter:  prompter,
		color:     annotation.DefaultColor,
		lineWidth: annotation.DefaultLineWidth,
		textDefaults: TextInput{
			Size: annotation.DefaultTextSize,
		},
	}
}

// SetTextDefaults seeds the formatting offered on the next text prompt.
func (s *Session) SetTextDefaults(size float64, bold, italic bool) {
	s.textDefaults = TextInput{
		Size:   annotation.ClampTextSize(size),
		Bold:   bold,
		Italic: italic,
	}
}

// SelectTool activates kind and discards any in-progress gesture without
// committing it. Re-selecting the current tool also resets the gesture.
func (s *Session) SelectTool(kind annotation.Kind) {
	s.active = kind
	s.hasTool = true
	s.resetGesture()
}

// Deselect clears the active tool; clicks become no-ops until a tool is
// selected again.
func (s *Session) Deselect() {
	s.hasTool = false
	s.resetGesture()
}

// CancelGesture drops any half-finished gesture without committing it. The
// tool selection is untouched.
func (s *Session) CancelGesture() {
	s.resetGesture()
}

// ActiveTool returns the selected tool and whether one is selected.
func (s *Session) ActiveTool() (annotation.Kind, bool) { return s.active, s.hasTool }

// SetColor updates the stroke color used for subsequent commits.
func (s *Session) SetColor(c color.RGBA) { s.color = c }

// Color returns the current stroke color.
func (s *Session) Color() color.RGBA { return s.color }

// SetLineWidth updates the stroke width used for subsequent commits.
func (s *Session) SetLineWidth(w int) {
	if w < 1 {
		w = 1
	}
	s.lineWidth = w
}

// LineWidth returns the current stroke width.
func (s *Session) LineWidth() int { return s.lineWidth }

// SetArrowStyle updates the arrow head style for subsequent arrows.
func (s *Session) SetArrowStyle(st annotation.ArrowStyle) { s.arrowStyle = st }

// ArrowStyle returns the current arrow head style.
func (s *Session) ArrowStyle() annotation.ArrowStyle { return s.arrowStyle }

// Gesturing reports whether a first point has been placed and the session is
// waiting for the closing click.
func (s *Session) Gesturing() bool { return s.hasPending }

// Click delivers a pointer press at p, in image-native coordinates. It
// reports whether an annotation was committed to the store.
func (s *Session) Click(p geometry.Point) bool {
	if !s.hasTool {
		log.Printf("tool: click at %+v with no tool selected ignored", p)
		return false
	}
	switch {
	case s.active.TwoPoint():
		return s.twoPointClick(p)
	case s.active == annotation.KindDot:
		s.store.Add(annotation.Annotation{
			Kind:      annotation.KindDot,
			P1:        p,
			Color:     s.color,
			LineWidth: s.lineWidth,
			Number:    s.store.NextNumber(),
		})
		return true
	case s.active == annotation.KindText:
		return s.textClick(p)
	default:
		log.Printf("tool: click with unsupported tool %v ignored", s.active)
		return false
	}
}

// Move delivers the pointer position while no button is pressed. It only
// updates the preview endpoint; committed state is untouched.
func (s *Session) Move(p geometry.Point) {
	s.pointer = p
	s.hasPointer = true
}

// Preview returns the annotation that the pending gesture would commit at
// the current pointer position, or false when nothing is in flight.
func (s *Session) Preview() (annotation.Annotation, bool) {
	if !s.hasPending || !s.hasPointer {
		return annotation.Annotation{}, false
	}
	return s.build(s.pending, s.pointer), true
}

func (s *Session) twoPointClick(p geometry.Point) bool {
	if !s.hasPending {
		s.pending = p
		s.hasPending = true
		s.pointer = p
		s.hasPointer = true
		return false
	}
	// Zero-size geometry still commits; the renderer decides whether a
	// degenerate shape is worth drawing.
	a := s.build(s.pending, p)
	s.store.Add(a)
	s.resetGesture()
	return true
}

func (s *Session) textClick(p geometry.Point) bool {
	if s.prompter == nil {
		log.Printf("tool: text click without a prompter ignored")
		return false
	}
	input, ok := s.prompter.Prompt(s.textDefaults)
	if !ok || input.Content == "" {
		return false
	}
	input.Size = annotation.ClampTextSize(input.Size)
	s.textDefaults = input
	s.store.Add(annotation.Annotation{
		Kind:      annotation.KindText,
		P1:        p,
		Color:     s.color,
		LineWidth: s.lineWidth,
		Text:      input.Content,
		Bold:      input.Bold,
		Italic:    input.Italic,
		TextSize:  input.Size,
	})
	return true
}

func (s *Session) build(p1, p2 geometry.Point) annotation.Annotation {
	a := annotation.Annotation{
		Kind:      s.active,
		P1:        p1,
		P2:        p2,
		Color:     s.color,
		LineWidth: s.lineWidth,
	}
	if s.active == annotation.KindArrow {
		a.ArrowStyle = s.arrowStyle
	}
	return a
}

func (s *Session) resetGesture() {
	s.hasPending = false
	s.hasPointer = false
}
