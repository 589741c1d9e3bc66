package main

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/diff"
	"github.com/plkit/plkit/value"
)

func diffCmd(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Loop == "" {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff (without -loop) requires 2 args, got %v", cli.ErrUsage, args)
		}
		from, err := getDocFile(cfg.MainConfig, cc, args[0])
		if err != nil {
			return err
		}
		to, err := getDocFile(cfg.MainConfig, cc, args[1])
		if err != nil {
			return err
		}
		differs, err := diffInputs(cfg, cc, from.Root().Value(), to.Root().Value(), false)
		if err != nil {
			return err
		}
		if differs {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	return diffLoop(cfg, cc)
}

// diffLoop runs cfg.Loop on a ticker and reports each change relative
// to the previous run.  The first run diffs against an empty document,
// so the initial state comes out as a script too.
func diffLoop(cfg *DiffConfig, cc *cli.Context) error {
	i := 0
	last := value.FromDictionary(nil)
	ticker := time.NewTicker(cfg.LoopEvery)
	defer ticker.Stop()
	diffCount := 0
	for {
		if i == cfg.LoopLim {
			break
		}
		cmd := exec.Command("sh", "-c", cfg.Loop)
		r, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("unable to create pipe for command %q: %w", cfg.Loop, err)
		}
		cmd.WaitDelay = cfg.LoopEvery
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("unable to start %q: %w", cfg.Loop, err)
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		next, err := codec.Decode(d, cfg.inFormat(""))
		if err != nil {
			return fmt.Errorf("error decoding command output: %w", err)
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("command %q exited with an error: %w", cfg.Loop, err)
		}
		differs, err := diffInputs(cfg, cc, last, next, diffCount > 0)
		if err != nil {
			return err
		}
		if differs {
			diffCount++
		}
		last = next
		<-ticker.C
		i++
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, from, to *value.Value, sep bool) (bool, error) {
	if cfg.Reverse {
		from, to = to, from
	}
	sc := diff.Diff(from, to)
	if sc.Empty() {
		return false, nil
	}
	w := cc.Out
	if sep {
		if _, err := w.Write([]byte("---\n")); err != nil {
			return false, err
		}
	}
	if cfg.Script || cfg.Loop != "" {
		if cfg.Loop != "" && cfg.outFormat(codec.YAMLFormat) == codec.YAMLFormat {
			when := time.Now().Format(time.RFC3339Nano)
			if _, err := w.Write([]byte("# difference found at " + when + "\n")); err != nil {
				return false, err
			}
		}
		return true, emit(cfg.MainConfig, cc, sc.Value(), codec.YAMLFormat)
	}
	var text string
	var err error
	if cfg.useColor(w) {
		text, err = diff.Pretty(from, to)
	} else {
		text, err = diff.Text(from, to)
	}
	if err != nil {
		return false, err
	}
	_, err = io.WriteString(w, text)
	return true, err
}
