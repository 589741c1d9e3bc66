package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.OutFormat == nil && !cfg.J && !cfg.Y {
		return fmt.Errorf("%w: convert needs -O, -j, or -y", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		doc, err := getDocFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		if i > 0 && cfg.outFormat(doc.Format()) == codec.YAMLFormat {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := emit(cfg.MainConfig, cc, doc.Root().Value(), doc.Format()); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
