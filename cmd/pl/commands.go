package main

import (
	"time"

	"github.com/scott-cotton/cli"
)

const mainDescription = `
pl is a command line property list processor.

pl reads property lists in yaml or json, addresses values inside them
with paths such as '$.servers[0].host', and can view, query, edit,
diff, patch, and reformat them.

formats are detected from filenames and may be forced with -j, -y, or
the -I and -O options.  the filename '-' means stdin.
`

func MainCommand() *cli.Command {
	cfg := &MainConfig{RC: loadRC()}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "o",
		Aliases:     []string{"output"},
		Description: "output to file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filename)"),
	})
	opts = append(opts, &cli.Opt{
		Name:        "I",
		Aliases:     []string{"in-format"},
		Description: "force the input format (yaml, json)",
		Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
	})
	opts = append(opts, &cli.Opt{
		Name:        "O",
		Aliases:     []string{"out-format"},
		Description: "force the output format (yaml, json)",
		Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
	})
	cmd := cli.NewCommandAt(&cfg.Main, "pl").
		WithSynopsis("pl [opts] command [opts] [args]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return plMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			ListCommand(cfg),
			SetCommand(cfg),
			InsertCommand(cfg),
			RemoveCommand(cfg),
			KeysCommand(cfg),
			FindCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			ConvertCommand(cfg),
			FmtCommand(cfg),
		)
	return cmd
}

const viewDescription = `
view pretty prints property lists.

with no files, view reads stdin.  several files are separated by
'---' lines on output.
`

func ViewCommand(mCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription(viewDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

const getDescription = `
get prints the single value addressed by a path, such as
'$.servers[0].host'.  nothing is printed when the path names an
absent dictionary key.  for wildcard paths, see 'pl list'.
`

func GetCommand(mCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mCfg}
	cmd := cli.NewCommand("get").
		WithSynopsis("get <path> [files]").
		WithDescription(getDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

const listDescription = `
list prints an array of every value matching a path.  the path may
contain wildcards ('$.servers[*].host') and descendant steps
('$...host'); matches come out in document order.
`

func ListCommand(mCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mCfg}
	cmd := cli.NewCommand("list").
		WithSynopsis("list <path> [files]").
		WithDescription(listDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
	cfg.List = cmd
	return cmd
}

const setDescription = `
set replaces the value at a path.

the value argument is parsed as yaml, so '5' is a number, 'true' a
boolean, and '[1, 2]' an array.  -kind forces a scalar interpretation
instead, for example -kind string 5.
`

func SetCommand(mCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("set").
		WithSynopsis("set [opts] <path> <value> [file]").
		WithDescription(setDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

const insertDescription = `
insert adds an item to the collection at a path.

with three arguments the middle one is the new value, parsed as yaml;
with two the second is the file and the new item comes from the -t
template ('-t ?' lists them).  dictionaries take a -key; a missing
key is generated.  arrays take -at, defaulting to the end.
`

func InsertCommand(mCfg *MainConfig) *cli.Command {
	cfg := &InsertConfig{MainConfig: mCfg, At: -1, Template: "String"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("insert").
		WithSynopsis("insert [opts] <path> [value] [file]").
		WithDescription(insertDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return insert(cfg, cc, args)
		})
	cfg.Insert = cmd
	return cmd
}

const removeDescription = `
remove deletes the value at a path from its parent collection.
`

func RemoveCommand(mCfg *MainConfig) *cli.Command {
	cfg := &RemoveConfig{MainConfig: mCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("remove").
		WithAliases("rm").
		WithSynopsis("remove [opts] <path> [file]").
		WithDescription(removeDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return remove(cfg, cc, args)
		})
	cfg.Remove = cmd
	return cmd
}

const keysDescription = `
keys lists the keys of the dictionary at a path, in document order.
for arrays it prints the indices.
`

func KeysCommand(mCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mCfg}
	cmd := cli.NewCommand("keys").
		WithSynopsis("keys [path] [file]").
		WithDescription(keysDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
	cfg.Keys = cmd
	return cmd
}

const findDescription = `
find selects values with a query expression and prints their paths.

queries see one value at a time with its key, index, path, kind,
value, count, and depth, for example:

	pl find 'kind == "string" and value matches "^-"' conf.yaml
	pl find 'key == "port" and value > 1024' conf.yaml
`

func FindCommand(mCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("find").
		WithSynopsis("find [opts] <query> [file]").
		WithDescription(findDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
	cfg.Find = cmd
	return cmd
}

const diffDescription = `
diff compares two property lists.

by default it prints a line diff of their canonical yaml.  -script
emits a machine readable change script instead, which 'pl patch' can
apply.  diff exits 1 when the documents differ.

with -loop, diff runs a command on a timer and emits a change script
whenever its output changes:

	pl diff -loop 'curl -s localhost:8080/state' -loopEvery 5s
`

func DiffCommand(mCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mCfg, LoopEvery: time.Second, LoopLim: -1}
	loopEveryOpt := &cli.Opt{
		Name: "loopEvery",
		Type: cli.FuncOpt(cfg.mkLoopEvery()),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, loopEveryOpt)
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithSynopsis("diff [opts] <old> <new>, or diff -loop <cmd>").
		WithDescription(diffDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffCmd(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

const patchDescription = `
patch applies a change script, as produced by 'pl diff -script', to a
property list.  -r applies it in reverse, undoing it.  -rfc6902 reads
the script as an RFC 6902 json patch instead.
`

func PatchCommand(mCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithSynopsis("patch [opts] <script> [file]").
		WithDescription(patchDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

const convertDescription = `
convert rewrites property lists in another format, for example

	pl convert -O json settings.yaml
`

func ConvertCommand(mCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mCfg}
	cmd := cli.NewCommand("convert").
		WithSynopsis("convert -O <format> [files]").
		WithDescription(convertDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
	cfg.Convert = cmd
	return cmd
}

const fmtDescription = `
fmt canonicalizes property lists: it parses them and writes them back
out in the same format with normalized layout.  with -w the files are
rewritten in place.
`

func FmtCommand(mCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("fmt").
		WithSynopsis("fmt [opts] [files]").
		WithDescription(fmtDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtCmd(cfg, cc, args)
		})
	cfg.Fmt = cmd
	return cmd
}
