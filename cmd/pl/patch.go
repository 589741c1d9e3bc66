package main

import (
	"fmt"
	"io"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/diff"
	"github.com/plkit/plkit/value"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a script and an optional file", cli.ErrUsage)
	}
	if cfg.RFC6902 && cfg.Reverse {
		return fmt.Errorf("%w: RFC 6902 patches cannot be reversed", cli.ErrUsage)
	}
	file := fileArg(args, 1)
	if !cfg.String && args[0] == "-" && file == "-" {
		return fmt.Errorf("%w: the script and the file cannot both be stdin", cli.ErrUsage)
	}
	script, err := getScriptText(cfg, cc, args[0])
	if err != nil {
		return err
	}
	doc, err := getDocFile(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	root := doc.Root().Value()
	var res *value.Value
	if cfg.RFC6902 {
		res, err = applyJSONPatch(root, script)
	} else {
		res, err = applyScript(cfg, root, script)
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	doc.SetRoot(res)
	return writeResult(cfg.MainConfig, cc, doc, file, cfg.Write)
}

// getScriptText reads the script argument: a filename, "-" for stdin,
// or with -s the script text itself.
func getScriptText(cfg *PatchConfig, cc *cli.Context, arg string) ([]byte, error) {
	if cfg.String {
		return []byte(arg), nil
	}
	if arg == "-" {
		return io.ReadAll(cc.In)
	}
	return os.ReadFile(arg)
}

func applyScript(cfg *PatchConfig, root *value.Value, script []byte) (*value.Value, error) {
	// yaml is a superset of json here, so one decode covers scripts
	// written in either.
	scDoc, err := codec.Decode(script, codec.YAMLFormat)
	if err != nil {
		return nil, err
	}
	sc, err := diff.FromValue(scDoc)
	if err != nil {
		return nil, err
	}
	if cfg.Reverse {
		sc = sc.Reverse()
	}
	return sc.Apply(root)
}

// applyJSONPatch routes the document through json to apply an RFC
// 6902 patch, so dates and data travel as strings.
func applyJSONPatch(root *value.Value, script []byte) (*value.Value, error) {
	ops, err := jsonpatch.DecodePatch(script)
	if err != nil {
		return nil, err
	}
	d, err := codec.EncodeJSON(root, codec.EncodeLossy(true))
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return codec.DecodeJSON(out)
}
