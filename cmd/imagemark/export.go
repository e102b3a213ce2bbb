package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/example/imagemark/internal/clipboard"
	"github.com/example/imagemark/internal/export"
	"github.com/example/imagemark/internal/host"
)

// exportCmd re-encodes an image without placing annotations: format
// conversion by output extension, optional drop shadow, optional clipboard
// target.
type exportCmd struct {
	*root
	fs *flag.FlagSet

	file        string
	output      string
	toClipboard bool
	shadow      bool
}

func (c *exportCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "input image file")
	fs.StringVar(&c.output, "output", "", "output file path (default: input with -annotated suffix)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the image to the clipboard instead of writing a file")
	fs.BoolVar(&c.shadow, "shadow", false, "frame the result with a drop shadow")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	src, err := host.LoadImage(c.file)
	if err != nil {
		return err
	}

	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	if c.shadow {
		out = export.ApplyShadow(out, export.DefaultShadowOptions())
	}

	if c.toClipboard {
		if err := clipboard.WriteImage(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifier.Copy(c.file)
		return nil
	}

	dest := c.output
	if dest == "" {
		dest = export.OutputPath(c.file)
	}
	if err := writeImage(dest, out); err != nil {
		return err
	}
	c.notifier.Save(dest)
	fmt.Fprintf(os.Stderr, "wrote %s\n", dest)
	return nil
}
