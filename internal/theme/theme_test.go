package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `Name: Test
Background: #111111
ButtonActive: #FF000080
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Test" {
		t.Errorf("Name = %q, want Test", th.Name)
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 255}) {
		t.Errorf("Background = %+v", th.Background)
	}
	if th.ButtonActive != (color.RGBA{0xFF, 0, 0, 0x80}) {
		t.Errorf("ButtonActive = %+v", th.ButtonActive)
	}
	// Unset keys keep the default palette.
	if th.Foreground != Default().Foreground {
		t.Errorf("Foreground = %+v, want default", th.Foreground)
	}
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	if _, err := Parse(strings.NewReader("SomeFutureKey: #123456\n")); err != nil {
		t.Fatalf("unknown key should be ignored, got %v", err)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: red\n")); err == nil {
		t.Fatal("expected error for non-hex color")
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{0x12, 0x34, 0x56, 255},
		{0x12, 0x34, 0x56, 0x78},
	} {
		got, err := ParseColor(FormatColor(c))
		if err != nil {
			t.Fatalf("ParseColor(%s): %v", FormatColor(c), err)
		}
		if got != c {
			t.Errorf("round trip %v -> %v", c, got)
		}
	}
}

func TestEmbeddedThemes(t *testing.T) {
	l := NewLoader()
	for _, name := range []string{"light", "dark"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name == "" {
			t.Errorf("embedded theme %q has no name", name)
		}
	}
}

func TestLoadEmptyNameReturnsDefault(t *testing.T) {
	l := NewLoader()
	th, err := l.Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if th.Name != "Default" {
		t.Errorf("Name = %q, want Default", th.Name)
	}
}
