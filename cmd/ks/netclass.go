package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/kicad-edit/kicad-edit/project"
)

func netclassList(cfg *NetclassListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: netclass list requires one argument, a .kicad_pro file", cli.ErrUsage)
	}
	classes, err := project.ListNetClasses(args[0])
	if err != nil {
		return err
	}
	if cfg.JSON {
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(classes)
	}
	for _, c := range classes {
		fmt.Fprintf(cc.Out, "%s\n", c.Name)
		if len(c.Patterns) > 0 {
			fmt.Fprintf(cc.Out, "  nets: %s\n", strings.Join(c.Patterns, ", "))
		}
		fields := make([]string, 0, len(c.Rules))
		for f := range c.Rules {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(cc.Out, "  %s: %v\n", f, c.Rules[f])
		}
	}
	return nil
}

func netclassSet(cfg *NetclassSetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: netclass set requires a .kicad_pro file and a class name", cli.ErrUsage)
	}
	msg, err := project.UpdateNetClass(args[0], args[1], cfg.rules, cfg.Pattern)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, msg)
	return nil
}
