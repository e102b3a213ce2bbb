package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/host"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := host.Palette()
	fmt.Fprintln(os.Stdout, "available palette colors (* marks the current default):")
	for idx, entry := range palette {
		marker := " "
		if entry.Color == c.draw.Color {
			marker = "*"
		}
		hex := fmt.Sprintf("#%02X%02X%02X", entry.Color.R, entry.Color.G, entry.Color.B)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(os.Stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	fmt.Fprintln(os.Stdout, "any #RRGGBB or #RRGGBBAA value is also accepted by -color.")
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet { return c.fs }

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ExitOnError)
	cmd := &widthsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	fmt.Fprintln(os.Stdout, "available stroke widths (* marks the current default):")
	for _, width := range annotation.LineWidths {
		marker := " "
		if width == c.draw.LineWidth {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %3dpx\n", marker, width)
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet { return c.fs }

type stylesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseStylesCmd(args []string, r *root) (*stylesCmd, error) {
	fs := flag.NewFlagSet("styles", flag.ExitOnError)
	cmd := &stylesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *stylesCmd) Run() error {
	fmt.Fprintln(os.Stdout, "available arrow head styles (* marks the current default):")
	for idx, name := range annotation.ArrowStyleNames {
		marker := " "
		if annotation.ArrowStyle(idx) == c.draw.ArrowStyle {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, name)
	}
	return nil
}

func (c *stylesCmd) FlagSet() *flag.FlagSet { return c.fs }
