// Package config reads and writes the application's rc-format settings file.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/theme"
)

// Draw holds the initial drawing defaults applied when a viewer opens.
type Draw struct {
	Color      color.RGBA
	LineWidth  int
	ArrowStyle annotation.ArrowStyle
	TextSize   float64
}

// Notify holds desktop notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Draw   Draw
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Draw: Draw{
			Color:      annotation.DefaultColor,
			LineWidth:  annotation.DefaultLineWidth,
			ArrowStyle: annotation.ArrowStandard,
			TextSize:   annotation.DefaultTextSize,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String renders the configuration in rc format so that Parse(cfg.String())
// reproduces cfg.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[draw]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(c.Draw.Color))
	fmt.Fprintf(&sb, "line_width = %d\n", c.Draw.LineWidth)
	fmt.Fprintf(&sb, "arrow_style = %s\n", c.Draw.ArrowStyle)
	fmt.Fprintf(&sb, "text_size = %g\n", c.Draw.TextSize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", theme.FormatColor(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", theme.FormatColor(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", theme.FormatColor(t.ToolbarBackground))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", theme.FormatColor(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", theme.FormatColor(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", theme.FormatColor(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonActive: %s\n", theme.FormatColor(t.ButtonActive))
		fmt.Fprintf(&sb, "ButtonText: %s\n", theme.FormatColor(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", theme.FormatColor(t.ButtonBorder))
		fmt.Fprintf(&sb, "SwatchBorder: %s\n", theme.FormatColor(t.SwatchBorder))
		sb.WriteString("\n")
	}

	return sb.String()
}
