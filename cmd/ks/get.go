package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/scott-cotton/cli"

	"github.com/kicad-edit/kicad-edit/schematic"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires a .kicad_sch file and a reference", cli.ErrUsage)
	}
	props, err := schematic.GetComponent(args[0], args[1])
	if err != nil {
		return err
	}
	if cfg.JSON {
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(props)
	}
	names := make([]string, 0, len(props))
	for n := range props {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		p := props[n]
		vis := ""
		if !p.Visible {
			vis = " (hidden)"
		}
		fmt.Fprintf(cc.Out, "%s = %s%s\n", n, p.Value, vis)
	}
	return nil
}
