package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 files, got %v", cli.ErrUsage, args)
	}
	a, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	b, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	if printLineDiff(cfg.MainConfig, cc.Out, string(a), string(b)) {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// printLineDiff writes a +/- line diff of a and b and reports whether
// they differ.
func printLineDiff(cfg *MainConfig, w io.Writer, a, b string) bool {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var add, del *color.Color
	if cfg.colorEnabled(w) {
		add = color.New(color.FgGreen)
		del = color.New(color.FgRed)
	}
	differs := false
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		differs = true
		prefix, c := "+", add
		if d.Type == diffmatchpatch.DiffDelete {
			prefix, c = "-", del
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if c != nil {
				c.Fprintf(w, "%s%s\n", prefix, line)
			} else {
				fmt.Fprintf(w, "%s%s\n", prefix, line)
			}
		}
	}
	return differs
}
