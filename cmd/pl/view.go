package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	return viewFiles(cfg, cc, cc.Out, args)
}

func viewFiles(cfg *ViewConfig, cc *cli.Context, w io.Writer, files []string) error {
	mCfg := cfg.MainConfig
	for i, file := range files {
		doc, err := getDocFile(mCfg, cc, file)
		if err != nil {
			return err
		}
		d, err := codec.Encode(doc.Root().Value(), mCfg.outFormat(doc.Format()), mCfg.encOpts()...)
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if _, err := w.Write(d); err != nil {
			return fmt.Errorf("error writing %s: %w", file, err)
		}
		if i < len(files)-1 {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
