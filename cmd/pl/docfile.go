package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit"
	"github.com/plkit/plkit/backup"
	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

// getDocFile reads and decodes the property list at path, "-" meaning
// cc.In.
func getDocFile(cfg *MainConfig, cc *cli.Context, path string) (*plkit.Document, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	doc, err := plkit.Decode(d, cfg.inFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// fileArg returns the trailing file argument, defaulting to stdin.
func fileArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return "-"
}

// emit encodes v for output and writes it to cc.Out.
func emit(cfg *MainConfig, cc *cli.Context, v *value.Value, in codec.Format) error {
	d, err := codec.Encode(v, cfg.outFormat(in), cfg.encOpts()...)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}

// writeResult routes an edited document back to its file when inPlace
// is set, and to cc.Out otherwise.
func writeResult(cfg *MainConfig, cc *cli.Context, doc *plkit.Document, path string, inPlace bool) error {
	if !inPlace {
		return emit(cfg, cc, doc.Root().Value(), doc.Format())
	}
	if path == "-" {
		return fmt.Errorf("%w: -w needs a file argument, not stdin", cli.ErrUsage)
	}
	if err := snapshotFile(cfg, path); err != nil {
		return err
	}
	d, err := codec.Encode(doc.Root().Value(), doc.Format(), cfg.encOpts()...)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, d, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// snapshotFile squirrels away the current on-disk document before an
// in place rewrite, when the config enables backups.  writeResult
// calls it before overwriting, so the file still holds the pre-edit
// document here.
func snapshotFile(cfg *MainConfig, path string) error {
	rc := cfg.RC
	if rc == nil || rc.Backups <= 0 {
		return nil
	}
	d, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	orig, err := codec.Decode(d, cfg.inFormat(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pl: not snapshotting %s: %v\n", path, err)
		return nil
	}
	dir := rc.BackupDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(path), ".plbak")
	}
	store := backup.NewStore(filepath.Join(dir, filepath.Base(path)), rc.Backups)
	_, err = store.Save(orig)
	return err
}

// normPath lets users drop the leading '$': 'servers[0]' means
// '$.servers[0]'.
func normPath(p string) string {
	if p == "" || p[0] == '$' {
		return p
	}
	if p[0] == '[' || p[0] == '.' {
		return "$" + p
	}
	return "$." + p
}
