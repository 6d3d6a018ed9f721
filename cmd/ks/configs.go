package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	JSON  bool `cli:"name=json aliases=j desc='output results as JSON'"`
	Color bool `cli:"name=color desc='force colored diff output'"`

	Main *cli.Command
}

func (cfg *MainConfig) colorEnabled(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type ListConfig struct {
	*MainConfig
	Prefix string `cli:"name=p aliases=prefix desc='filter by reference prefix'"`
	Where  string `cli:"name=w aliases=where desc='filter expression over Reference, Value, Footprint'"`

	List *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n desc='preview the edit as a diff without writing'"`

	removals []string
	hides    []string
	shows    []string

	Set *cli.Command
}

type RenameConfig struct {
	*MainConfig

	Rename *cli.Command
}

type InfoConfig struct {
	*MainConfig
	Title    string `cli:"name=title desc='sheet title'"`
	Revision string `cli:"name=rev aliases=revision desc='sheet revision'"`
	Date     string `cli:"name=date desc='sheet date (YYYY-MM-DD recommended)'"`
	Author   string `cli:"name=author desc='author, stored as title block comment 1'"`
	Company  string `cli:"name=company desc='company name'"`

	Info *cli.Command
}

type NetclassConfig struct {
	*MainConfig

	Netclass *cli.Command
}

type NetclassListConfig struct {
	*MainConfig

	List *cli.Command
}

type NetclassSetConfig struct {
	*MainConfig
	Pattern string `cli:"name=pattern desc='wildcard net pattern to add'"`

	rules map[string]float64

	Set *cli.Command
}

func (cfg *NetclassSetConfig) ruleOpt(_ *cli.Context, a string) (any, error) {
	k, v, ok := strings.Cut(a, "=")
	if !ok {
		return nil, fmt.Errorf("%w: rules are field=value, got %q", cli.ErrUsage, a)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rule %q: %w", cli.ErrUsage, a, err)
	}
	cfg.rules[k] = f
	return f, nil
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

// appendOpt collects a repeatable flag's values.
func appendOpt(dst *[]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		*dst = append(*dst, a)
		return a, nil
	})
}
