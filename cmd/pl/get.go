package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a value path", cli.ErrUsage)
	}
	if args[0] == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	path := normPath(args[0])
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		if err := queryArg(cfg.MainConfig, cc, arg, path, false, i > 0); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: list requires one argument, a value path", cli.ErrUsage)
	}
	if args[0] == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	path := normPath(args[0])
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := queryArg(cfg.MainConfig, cc, arg, path, true, false); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func queryArg(cfg *MainConfig, cc *cli.Context, arg, path string, list, sep bool) error {
	doc, err := getDocFile(cfg, cc, arg)
	if err != nil {
		return err
	}
	if list {
		res, err := doc.Root().Value().ListPath(nil, path)
		if err != nil {
			return fmt.Errorf("error executing list on %s: %w", arg, err)
		}
		return emit(cfg, cc, value.FromSlice(res), doc.Format())
	}
	res, err := doc.Root().Value().GetPath(path)
	if err != nil {
		return fmt.Errorf("error executing get on %s: %w", arg, err)
	}
	if res == nil {
		// don't encode anything and don't yell either
		return nil
	}
	if sep && cfg.outFormat(doc.Format()) == codec.YAMLFormat {
		if _, err := io.WriteString(cc.Out, "---\n# from "+arg+"\n"); err != nil {
			return err
		}
	}
	return emit(cfg, cc, res, doc.Format())
}
