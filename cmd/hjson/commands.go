package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "hjson").
		WithSynopsis("hjson [opts] command [opts] [files]").
		WithDescription("hjson is a tool for working with human-friendly json documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return hjsonMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			JsonCommand(cfg),
			YamlCommand(cfg),
			MergeCommand(cfg))
}

func hjsonMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("fmt").
		WithAliases("f").
		WithSynopsis("fmt [opts] [files]").
		WithDescription("reformat hjson documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtRun(cfg, cc, args)
		})
	cfg.Fmt = cmd
	return cmd
}

func JsonCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JsonConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("json").
		WithAliases("j").
		WithSynopsis("json [opts] [files]").
		WithDescription("convert hjson documents to plain json").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonRun(cfg, cc, args)
		})
	cfg.Json = cmd
	return cmd
}

func YamlCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &YamlConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("yaml").
		WithAliases("y").
		WithSynopsis("yaml [-r] [files]").
		WithDescription("convert hjson documents to yaml, or back with -r").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return yamlRun(cfg, cc, args)
		})
	cfg.Yaml = cmd
	return cmd
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("merge").
		WithAliases("m").
		WithSynopsis("merge <base> [layers...]").
		WithDescription("merge hjson documents left to right and print the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mergeRun(cfg, cc, args)
		})
	cfg.Merge = cmd
	return cmd
}
