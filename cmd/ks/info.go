package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/kicad-edit/kicad-edit/schematic"
)

func info(cfg *InfoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Info.Parse(cc, args)
	if err != nil {
		cfg.Info.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: info requires one argument, a .kicad_sch file", cli.ErrUsage)
	}
	si := schematic.SheetInfo{}
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	si.Title = opt(cfg.Title)
	si.Revision = opt(cfg.Revision)
	si.Date = opt(cfg.Date)
	si.Author = opt(cfg.Author)
	si.Company = opt(cfg.Company)

	msg, err := schematic.UpdateSheetInfo(args[0], si)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, msg)
	return nil
}
