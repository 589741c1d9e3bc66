package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/template"
	"github.com/plkit/plkit/value"
)

func insert(cfg *InsertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Insert.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Template == "?" {
		for _, name := range template.Names() {
			fmt.Fprintln(cc.Out, name)
		}
		return nil
	}
	var (
		path string
		file string
		item *value.Value
	)
	switch len(args) {
	case 1:
		path, file = args[0], "-"
	case 2:
		path, file = args[0], args[1]
	case 3:
		path, file = args[0], args[2]
		item, err = parseValueArg("", args[1])
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	default:
		return fmt.Errorf("%w: insert <path> [value] [file]", cli.ErrUsage)
	}
	if item == nil {
		t := template.Lookup(cfg.Template)
		if t == nil {
			return fmt.Errorf("%w: no template %q (have %s)",
				cli.ErrUsage, cfg.Template, strings.Join(template.Names(), ", "))
		}
		item = t.Instance()
	}
	path = normPath(path)
	doc, err := getDocFile(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	n, err := doc.Find(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if n == nil {
		return fmt.Errorf("no value at %s", path)
	}
	at := cfg.At
	if at < 0 {
		at = n.NumChildren()
	}
	ed := doc.Editor()
	before := ed.UndoDepth()
	ed.InsertItem(n, at, cfg.Key, item)
	if ed.UndoDepth() == before {
		return fmt.Errorf("cannot insert into %s (%s) at %d", path, n.Value().Kind, at)
	}
	return writeResult(cfg.MainConfig, cc, doc, file, cfg.Write)
}
