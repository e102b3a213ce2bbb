package main

import (
	"flag"

	"github.com/example/imagemark/internal/host"
)

// viewCmd opens an image in the interactive annotation viewer.
type viewCmd struct {
	*root
	fs   *flag.FlagSet
	path string
}

func (v *viewCmd) FlagSet() *flag.FlagSet { return v.fs }

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	v := &viewCmd{root: r, fs: fs}
	fs.Usage = usageFunc(v)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: v}
	}
	v.path = fs.Arg(0)
	return v, nil
}

func (v *viewCmd) Run() error {
	return host.Run(v.path, host.Options{
		Theme:    v.activeTheme,
		Draw:     v.draw,
		Notifier: v.notifier,
	})
}
