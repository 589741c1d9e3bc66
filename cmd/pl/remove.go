package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remove.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: remove <path> [file]", cli.ErrUsage)
	}
	path := normPath(args[0])
	file := fileArg(args, 1)
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
	parent := n.Parent()
	if parent == nil {
		return fmt.Errorf("%w: cannot remove the document root", cli.ErrUsage)
	}
	ed := doc.Editor()
	before := ed.UndoDepth()
	ed.RemoveItem(parent, n.Index())
	if ed.UndoDepth() == before {
		return fmt.Errorf("cannot remove %s", path)
	}
	return writeResult(cfg.MainConfig, cc, doc, file, cfg.Write)
}
