package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
)

// MainConfig holds the options shared by every pl subcommand.
type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Color bool `cli:"name=color desc='force color output'"`

	Indent int `cli:"name=indent desc='indent width (0 uses the format default)'"`

	Lossy bool `cli:"name=lossy desc='let json carry dates and data as strings'"`

	// InFormat, OutFormat are set by the -I, -O options and override
	// filename based format detection.
	InFormat, OutFormat *codec.Format

	// Out is managed by the '-o' option.
	Out      string
	CloseOut func() error

	// RC is the user config file, if any.
	RC *RC

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**codec.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := codec.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat resolves the format used to decode the input at path.  The
// -j, -y, and -I options take precedence over the filename suffix, and
// stdin defaults to yaml.
func (cfg *MainConfig) inFormat(path string) codec.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	switch {
	case cfg.J:
		return codec.JSONFormat
	case cfg.Y:
		return codec.YAMLFormat
	}
	if path == "" || path == "-" {
		return codec.YAMLFormat
	}
	return codec.FormatForPath(path)
}

// outFormat resolves the format used to encode results, defaulting to
// the format the input arrived in.
func (cfg *MainConfig) outFormat(in codec.Format) codec.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	switch {
	case cfg.J:
		return codec.JSONFormat
	case cfg.Y:
		return codec.YAMLFormat
	}
	return in
}

func (cfg *MainConfig) encOpts() []codec.EncodeOption {
	indent := cfg.Indent
	if indent == 0 && cfg.RC != nil {
		indent = cfg.RC.Indent
	}
	res := []codec.EncodeOption{codec.EncodeIndent(indent)}
	if cfg.Lossy {
		res = append(res, codec.EncodeLossy(true))
	}
	return res
}

// useColor reports whether output to w should be colorized.  The
// -color option forces it on, the config file can force it off, and
// otherwise we colorize terminals only.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.RC != nil {
		switch cfg.RC.Color {
		case "always":
			return true
		case "never":
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// RC is the optional per user config, read from $PL_CONFIG or
// $HOME/.pl.yaml.
type RC struct {
	// Indent is the default indent width.
	Indent int `yaml:"indent"`
	// Color is one of "auto", "always", "never".
	Color string `yaml:"color"`
	// Backups is how many snapshots of a file to keep when editing
	// it in place.  0 disables backups.
	Backups int `yaml:"backups"`
	// BackupDir overrides where snapshots go.  It defaults to a
	// .plbak directory next to the edited file.
	BackupDir string `yaml:"backupDir"`
}

func loadRC() *RC {
	rc := &RC{}
	path := os.Getenv("PL_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return rc
		}
		path = filepath.Join(home, ".pl.yaml")
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return rc
	}
	if err := yaml.Unmarshal(d, rc); err != nil {
		fmt.Fprintf(os.Stderr, "pl: ignoring config %s: %v\n", path, err)
		return &RC{}
	}
	return rc
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type ListConfig struct {
	*MainConfig
	List *cli.Command
}

type SetConfig struct {
	*MainConfig
	Kind  string `cli:"name=kind desc='force the value kind: string, number, boolean, date, data'"`
	Write bool   `cli:"name=w desc='write the result back to the file'"`
	Set   *cli.Command
}

type InsertConfig struct {
	*MainConfig
	Key      string `cli:"name=key desc='dictionary key for the new item'"`
	At       int    `cli:"name=at desc='array position for the new item (default append)'"`
	Template string `cli:"name=t aliases=template desc='template for the new item (default string)'"`
	Write    bool   `cli:"name=w desc='write the result back to the file'"`
	Insert   *cli.Command
}

type RemoveConfig struct {
	*MainConfig
	Write  bool `cli:"name=w desc='write the result back to the file'"`
	Remove *cli.Command
}

type KeysConfig struct {
	*MainConfig
	Keys *cli.Command
}

type FindConfig struct {
	*MainConfig
	Values bool `cli:"name=v aliases=values desc='print matching values, not just paths'"`
	Find   *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse   bool   `cli:"name=r desc='reverse the sense of the diff'"`
	Script    bool   `cli:"name=script desc='emit a machine readable change script'"`
	Loop      string `cli:"name=loop desc='command producing documents to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int `cli:"name=loopLim desc='max number of times to loop'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

type PatchConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='apply the script in reverse'"`
	RFC6902 bool `cli:"name=rfc6902 desc='treat the script as an RFC 6902 json patch'"`
	String  bool `cli:"name=s desc='treat the script argument as script text, not a filename'"`
	Write   bool `cli:"name=w desc='write the result back to the file'"`
	Patch   *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	Convert *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='rewrite the files in place'"`
	Fmt   *cli.Command
}
