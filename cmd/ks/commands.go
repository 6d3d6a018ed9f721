package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "ks").
		WithSynopsis("ks [opts] command [opts]").
		WithDescription("ks edits KiCad schematic and project files without touching unrelated text.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			if _, err := cfg.Main.Parse(cc, args); err != nil {
				cfg.Main.Usage(cc, err)
				return cli.ExitCodeErr(1)
			}
			return fmt.Errorf("%w: expected a command", cli.ErrUsage)
		}).
		WithSubs(
			ListCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			RenameCommand(cfg),
			InfoCommand(cfg),
			NetclassCommand(cfg),
			DiffCommand(cfg))
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list [-p prefix] [-w expr] <file.kicad_sch>").
		WithDescription("list schematic components").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <file.kicad_sch> <reference>").
		WithDescription("show all properties of one component").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "rm",
			Description: "remove a property (repeatable)",
			Type:        cli.NamedFuncOpt(appendOpt(&cfg.removals), "(key)"),
		},
		&cli.Opt{
			Name:        "hide",
			Description: "hide a property on the schematic (repeatable)",
			Type:        cli.NamedFuncOpt(appendOpt(&cfg.hides), "(key)"),
		},
		&cli.Opt{
			Name:        "show",
			Description: "show a property on the schematic (repeatable)",
			Type:        cli.NamedFuncOpt(appendOpt(&cfg.shows), "(key)"),
		})
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-n] [-rm key] [-hide key] [-show key] <file.kicad_sch> <reference> [key=value ...]").
		WithDescription("set, remove, hide or show component properties").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func RenameCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenameConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Rename, "rename").
		WithAliases("mv").
		WithSynopsis("rename <file.kicad_sch> <old-net> <new-net>").
		WithDescription("rename net labels (local, global and hierarchical)").
		WithRun(func(cc *cli.Context, args []string) error {
			return rename(cfg, cc, args)
		})
}

func InfoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InfoConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Info, "info").
		WithSynopsis("info [-title t] [-rev r] [-date d] [-author a] [-company c] <file.kicad_sch>").
		WithDescription("update title block metadata").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return info(cfg, cc, args)
		})
}

func NetclassCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NetclassConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Netclass, "netclass").
		WithAliases("nc").
		WithSynopsis("netclass <subcommand>").
		WithDescription("list and edit net classes in .kicad_pro files").
		WithSubs(
			NetclassListCommand(cfg.MainConfig),
			NetclassSetCommand(cfg.MainConfig))
}

func NetclassListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NetclassListConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("netclass list <file.kicad_pro>").
		WithDescription("list net classes").
		WithRun(func(cc *cli.Context, args []string) error {
			return netclassList(cfg, cc, args)
		})
}

func NetclassSetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NetclassSetConfig{MainConfig: mainCfg, rules: map[string]float64{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "rule",
		Description: "rule override, e.g. track_width=0.5 (repeatable)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.ruleOpt), "(field=value)"),
	})
	return cli.NewCommandAt(&cfg.Set, "set").
		WithSynopsis("netclass set [-rule field=value]... [-pattern p] <file.kicad_pro> <class>").
		WithDescription("create or update a net class").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return netclassSet(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff <a.kicad_sch> <b.kicad_sch>").
		WithDescription("line diff of two schematic files").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
