package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/value"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 2 {
		return fmt.Errorf("%w: keys [path] [file]", cli.ErrUsage)
	}
	path := "$"
	if len(args) > 0 {
		path = normPath(args[0])
	}
	doc, err := getDocFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	v, err := doc.Root().Value().GetPath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if v == nil {
		return fmt.Errorf("no value at %s", path)
	}
	switch v.Kind {
	case value.DictionaryKind:
		for i := 0; i < v.Dict.Count(); i++ {
			fmt.Fprintln(cc.Out, v.Dict.PairAt(i).Key)
		}
	case value.ArrayKind:
		for i := 0; i < v.Arr.Count(); i++ {
			fmt.Fprintln(cc.Out, i)
		}
	default:
		return fmt.Errorf("%s is a %s, not a collection", path, v.Kind)
	}
	return nil
}
