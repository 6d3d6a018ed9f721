package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/kicad-edit/kicad-edit/schematic"
	"github.com/kicad-edit/kicad-edit/surgery"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a .kicad_sch file and a reference", cli.ErrUsage)
	}
	file, ref := args[0], args[1]

	changes := map[string]*schematic.Change{}
	ensure := func(key string) *schematic.Change {
		if ch := changes[key]; ch != nil {
			return ch
		}
		ch := &schematic.Change{}
		changes[key] = ch
		return ch
	}
	for _, kv := range args[2:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: property arguments are key=value, got %q", cli.ErrUsage, kv)
		}
		ensure(k).Value = &v
	}
	vis := func(keys []string, visible bool) {
		for _, k := range keys {
			v := visible
			ensure(k).Visible = &v
		}
	}
	vis(cfg.hides, false)
	vis(cfg.shows, true)
	// removal wins over any other change to the same key
	for _, k := range cfg.removals {
		changes[k] = nil
	}
	if len(changes) == 0 {
		return fmt.Errorf("%w: nothing to change", cli.ErrUsage)
	}

	if cfg.DryRun {
		doc, err := surgery.Load(file)
		if err != nil {
			return err
		}
		summary, err := schematic.StageComponentUpdate(doc, ref, changes)
		if err != nil {
			return err
		}
		printLineDiff(cfg.MainConfig, cc.Out, string(doc.Text()), string(doc.Apply()))
		fmt.Fprintf(cc.Out, "dry run: %s\n", summary)
		return nil
	}

	summary, err := schematic.UpdateComponent(file, ref, changes)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, summary)
	return nil
}
