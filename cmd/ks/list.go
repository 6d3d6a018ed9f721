package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	"github.com/kicad-edit/kicad-edit/schematic"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: list requires one argument, a .kicad_sch file", cli.ErrUsage)
	}
	comps, err := schematic.ListComponents(args[0], cfg.Prefix)
	if err != nil {
		return err
	}
	if cfg.Where != "" {
		comps, err = schematic.FilterComponents(comps, cfg.Where)
		if err != nil {
			return err
		}
	}
	if cfg.JSON {
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(comps)
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 8, 2, ' ', 0)
	for _, c := range comps {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Reference, c.Value, c.Footprint)
	}
	return tw.Flush()
}
