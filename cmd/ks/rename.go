package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/kicad-edit/kicad-edit/schematic"
)

func rename(cfg *RenameConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rename.Parse(cc, args)
	if err != nil {
		cfg.Rename.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: rename requires a .kicad_sch file, an old net name and a new one", cli.ErrUsage)
	}
	msg, err := schematic.RenameNet(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, msg)
	return nil
}
