package main

import (
	"os"

	"github.com/scott-cotton/cli"

	hjson "github.com/10088/hjson-go"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='force colorized output'"`
	NoColor bool `cli:"name=nocolor desc='disable colorized output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type FmtConfig struct {
	*MainConfig

	NoComments bool   `cli:"name=nc desc='strip comments'"`
	QuoteAll   bool   `cli:"name=q aliases=quote desc='quote all strings'"`
	QuoteKeys  bool   `cli:"name=qk desc='quote all keys'"`
	Separator  bool   `cli:"name=sep desc='write commas between elements'"`
	Sort       bool   `cli:"name=sort desc='sort keys alphabetically'"`
	NoBraces   bool   `cli:"name=nb desc='omit braces at the root'"`
	OpenBrace  bool   `cli:"name=ob desc='open braces on their own line'"`
	Indent     string `cli:"name=indent desc='indentation unit'"`

	Fmt *cli.Command
}

func (cfg *FmtConfig) encOpts() hjson.EncoderOptions {
	opts := hjson.DefaultOptions()
	opts.Comments = !cfg.NoComments
	opts.QuoteAlways = cfg.QuoteAll
	opts.QuoteKeys = cfg.QuoteKeys
	opts.Separator = cfg.Separator
	opts.PreserveInsertionOrder = !cfg.Sort
	opts.EmitRootBraces = !cfg.NoBraces
	opts.BracesSameLine = !cfg.OpenBrace
	if cfg.Indent != "" {
		opts.IndentBy = cfg.Indent
	}
	return opts
}

type JsonConfig struct {
	*MainConfig

	Sort bool `cli:"name=sort desc='sort keys alphabetically'"`

	Json *cli.Command
}

type YamlConfig struct {
	*MainConfig

	Reverse bool `cli:"name=r desc='convert yaml input to hjson instead'"`

	Yaml *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Json bool `cli:"name=j aliases=json desc='print the merged result as json'"`

	Merge *cli.Command
}
