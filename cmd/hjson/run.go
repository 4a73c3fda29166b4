package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	hjson "github.com/10088/hjson-go"
)

// readArg reads a file argument, with "-" meaning stdin.
func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	return data, nil
}

func argsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func (cfg *MainConfig) emit(cc *cli.Context, out []byte) error {
	if useColor(cfg, cc.Out) {
		return highlight(cc.Out, out)
	}
	_, err := cc.Out.Write(out)
	return err
}

func fmtRun(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	opts := cfg.encOpts()
	for _, arg := range argsOrStdin(args) {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		v, err := hjson.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		out, err := hjson.MarshalWithOptions(v, opts)
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		if err := cfg.emit(cc, out); err != nil {
			return err
		}
	}
	return nil
}

func jsonRun(cfg *JsonConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Json.Parse(cc, args)
	if err != nil {
		cfg.Json.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range argsOrStdin(args) {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		v, err := hjson.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		out, err := marshalJson(v, cfg.Sort)
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		if err := cfg.emit(cc, out); err != nil {
			return err
		}
	}
	return nil
}

func marshalJson(v hjson.Value, sorted bool) ([]byte, error) {
	if !sorted {
		return hjson.MarshalJson(v)
	}
	opts := hjson.DefaultOptions()
	opts.QuoteAlways = true
	opts.QuoteKeys = true
	opts.Separator = true
	opts.Comments = false
	opts.PreserveInsertionOrder = false
	return hjson.MarshalWithOptions(v, opts)
}

func mergeRun(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires at least one file", cli.ErrUsage)
	}
	var res hjson.Value
	for i, arg := range args {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		v, err := hjson.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if i == 0 {
			res = v
		} else {
			res = hjson.Merge(res, v)
		}
	}
	var out []byte
	if cfg.Json {
		out, err = hjson.MarshalJson(res)
	} else {
		out, err = hjson.Marshal(res)
	}
	if err != nil {
		return fmt.Errorf("error encoding merged result: %w", err)
	}
	return cfg.emit(cc, out)
}
