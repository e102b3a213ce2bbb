// Package theme defines the color palette for the viewer chrome. Themes are
// plain key/value files and can be shipped embedded, per-user or system-wide.
package theme

import (
	"image/color"
)

// Theme is the palette for the viewer window and its annotation toolbar.
type Theme struct {
	Name string

	Background color.RGBA // canvas backdrop around the image
	Foreground color.RGBA // label text

	ToolbarBackground color.RGBA

	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // background of the selected tool button
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	SwatchBorder color.RGBA // outline around color palette entries
}

// Default returns the built-in light palette.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonActive:          color.RGBA{150, 170, 220, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		SwatchBorder:          color.RGBA{90, 90, 90, 255},
	}
}
