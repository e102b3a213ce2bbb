package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/clipboard"
	"github.com/example/imagemark/internal/engine"
	"github.com/example/imagemark/internal/export"
	"github.com/example/imagemark/internal/geometry"
	"github.com/example/imagemark/internal/host"
	"github.com/example/imagemark/internal/tool"
)

// drawCmd places a single annotation on an image without opening a window.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	file        string
	output      string
	toClipboard bool
	shadow      bool
	colorSpec   string
	width       int
	styleSpec   string
	text        string
	textSize    float64
	bold        bool
	italic      bool

	shape  string
	coords []float64
}

func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }

var shapeKinds = map[string]annotation.Kind{
	"arrow":  annotation.KindArrow,
	"dot":    annotation.KindDot,
	"rect":   annotation.KindRect,
	"circle": annotation.KindCircle,
	"text":   annotation.KindText,
}

var shapeArgCount = map[string]int{
	"arrow":  4,
	"dot":    2,
	"rect":   4,
	"circle": 4,
	"text":   2,
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path (default: input with -annotated suffix)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard instead of writing a file")
	fs.BoolVar(&d.shadow, "shadow", false, "frame the result with a drop shadow")
	fs.StringVar(&d.colorSpec, "color", "", "color name or hex value")
	fs.IntVar(&d.width, "width", 0, "stroke width in pixels")
	fs.StringVar(&d.styleSpec, "arrow-style", "", "arrow head style")
	fs.StringVar(&d.text, "text", "", "content for the text shape")
	fs.Float64Var(&d.textSize, "text-size", 0, "text size in points")
	fs.BoolVar(&d.bold, "bold", false, "bold text")
	fs.BoolVar(&d.italic, "italic", false, "italic text")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(rest[0])
	n, ok := shapeArgCount[d.shape]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", d.shape)
	}
	coords, err := expectFloats(rest[1:], n, d.shape)
	if err != nil {
		return nil, err
	}
	d.coords = coords

	if d.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if d.shape == "text" && d.text == "" {
		return nil, fmt.Errorf("text shape requires -text")
	}
	return d, nil
}

func expectFloats(args []string, n int, shape string) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d coordinate arguments", shape, n)
	}
	vals := make([]float64, n)
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func (d *drawCmd) Run() error {
	src, err := host.LoadImage(d.file)
	if err != nil {
		return err
	}

	prompter := tool.PrompterFunc(func(defaults tool.TextInput) (tool.TextInput, bool) {
		in := defaults
		in.Content = d.text
		in.Bold = d.bold
		in.Italic = d.italic
		if d.textSize > 0 {
			in.Size = annotation.ClampTextSize(d.textSize)
		}
		return in, true
	})

	eng := engine.New(src, d.file, prompter)
	eng.SetColor(d.draw.Color)
	eng.SetLineWidth(d.draw.LineWidth)
	eng.SetArrowStyle(d.draw.ArrowStyle)
	if d.colorSpec != "" {
		col, err := parseColorSpec(d.colorSpec)
		if err != nil {
			return err
		}
		eng.SetColor(col)
	}
	if d.width != 0 {
		if !validLineWidth(d.width) {
			return fmt.Errorf("unsupported stroke width %d", d.width)
		}
		eng.SetLineWidth(d.width)
	}
	if d.styleSpec != "" {
		s, err := annotation.ParseArrowStyle(d.styleSpec)
		if err != nil {
			return err
		}
		eng.SetArrowStyle(s)
	}

	eng.SelectTool(shapeKinds[d.shape])
	eng.PointerDown(geometry.Pt(d.coords[0], d.coords[1]))
	if len(d.coords) == 4 {
		eng.PointerDown(geometry.Pt(d.coords[2], d.coords[3]))
	}
	if eng.Len() == 0 {
		return fmt.Errorf("%s at %v did not commit; coordinates may be outside the image", d.shape, d.coords)
	}

	out := export.Compose(src, eng.Snapshot())
	if d.shadow {
		out = export.ApplyShadow(out, export.DefaultShadowOptions())
	}

	if d.toClipboard {
		if err := clipboard.WriteImage(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		d.notifier.Copy(d.file)
		return nil
	}

	dest := d.output
	if dest == "" {
		dest = export.OutputPath(d.file)
	}
	if err := writeImage(dest, out); err != nil {
		return err
	}
	d.notifier.Save(dest)
	fmt.Fprintf(os.Stderr, "wrote %s\n", dest)
	return nil
}

func writeImage(dest string, out *image.RGBA) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: %v", export.ErrIO, err)
	}
	if err := export.Encode(f, out, dest); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	return f.Close()
}
