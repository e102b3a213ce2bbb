package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/config"
	"github.com/example/imagemark/internal/notify"
	"github.com/example/imagemark/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	notifier *notify.Notifier
	config   *config.Config

	saveAlerts bool
	copyAlerts bool
	themeName  string
	colorSpec  string
	lineWidth  int
	arrowStyle string
	textSize   float64

	activeTheme *theme.Theme
	draw        config.Draw
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("imagemark", flag.ExitOnError),
		program:  "imagemark",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an annotated image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > env > config > built-in default. Flags default to
	// the zero value so unset ones can fall through.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (light, dark, or a .theme file)")
	r.fs.StringVar(&r.colorSpec, "color", "", "initial drawing color name or hex value")
	r.fs.IntVar(&r.lineWidth, "width", 0, "initial stroke width in pixels (1, 2, 3, 5 or 8)")
	r.fs.StringVar(&r.arrowStyle, "arrow-style", "", "initial arrow head style (Standard, Open, Barbed, Small, Large)")
	r.fs.Float64Var(&r.textSize, "text-size", 0, "initial text size in points (8-72)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}

	if err := r.resolveTheme(); err != nil {
		return err
	}
	if err := r.resolveDrawDefaults(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "styles":
		cmd, err = parseStylesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() error {
	name := r.themeName
	if name == "" {
		name = os.Getenv("IMAGEMARK_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}

	if cfgTheme, ok := r.config.Themes[name]; ok {
		r.activeTheme = cfgTheme
		return nil
	}
	loader := theme.NewLoader()
	t, err := loader.Load(name)
	if err != nil {
		if name != "" && !strings.EqualFold(name, "default") {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme %q: %v. using default.\n", name, err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
	return nil
}

func (r *root) resolveDrawDefaults() error {
	d := r.config.Draw
	if r.colorSpec != "" {
		col, err := parseColorSpec(r.colorSpec)
		if err != nil {
			return err
		}
		d.Color = col
	}
	if r.lineWidth != 0 {
		if !validLineWidth(r.lineWidth) {
			return fmt.Errorf("unsupported stroke width %d", r.lineWidth)
		}
		d.LineWidth = r.lineWidth
	}
	if r.arrowStyle != "" {
		s, err := annotation.ParseArrowStyle(r.arrowStyle)
		if err != nil {
			return err
		}
		d.ArrowStyle = s
	}
	if r.textSize != 0 {
		d.TextSize = annotation.ClampTextSize(r.textSize)
	}
	r.draw = d
	return nil
}

func validLineWidth(w int) bool {
	for _, lw := range annotation.LineWidths {
		if lw == w {
			return true
		}
	}
	return false
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
