package main

import (
	"io"

	"github.com/fatih/color"
)

// pathSprint returns a sprint function for value paths, colored when
// output to w should be.
func pathSprint(cfg *MainConfig, w io.Writer) func(a ...any) string {
	c := color.New(color.FgCyan)
	if cfg.useColor(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}
