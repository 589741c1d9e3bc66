package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
)

// fmtCmd re-encodes documents in their own format.  Unlike view it
// ignores -O: fmt normalizes files where they stand.
func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		if cfg.Write && arg == "-" {
			return fmt.Errorf("%w: -w needs file arguments, not stdin", cli.ErrUsage)
		}
		doc, err := getDocFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		if cfg.Write {
			if err := writeResult(cfg.MainConfig, cc, doc, arg, true); err != nil {
				return err
			}
			continue
		}
		d, err := codec.Encode(doc.Root().Value(), doc.Format(), cfg.encOpts()...)
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		if i > 0 && doc.Format() == codec.YAMLFormat {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
	}
	return nil
}
