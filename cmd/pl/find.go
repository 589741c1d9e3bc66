package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/query"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: find <query> [file]", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	doc, err := getDocFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	ns, err := q.Select(doc.Root())
	if err != nil {
		return err
	}
	if !cfg.Values {
		paint := pathSprint(cfg.MainConfig, cc.Out)
		for _, n := range ns {
			fmt.Fprintln(cc.Out, paint(n.Path()))
		}
		return nil
	}
	yaml := cfg.outFormat(doc.Format()) == codec.YAMLFormat
	for i, n := range ns {
		if i > 0 && yaml {
			fmt.Fprintln(cc.Out, "---")
		}
		if yaml {
			fmt.Fprintf(cc.Out, "# %s\n", n.Path())
		}
		if err := emit(cfg.MainConfig, cc, n.Value(), doc.Format()); err != nil {
			return err
		}
	}
	return nil
}
