package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Edit  bool
	Tree  bool
	Codec bool
	Query bool
	LSP   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Edit = boolEnv("PL_DEBUG_EDIT")
	d.Tree = boolEnv("PL_DEBUG_TREE")
	d.Codec = boolEnv("PL_DEBUG_CODEC")
	d.Query = boolEnv("PL_DEBUG_QUERY")
	d.LSP = boolEnv("PL_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Edit() bool {
	return d.Edit
}
func Tree() bool {
	return d.Tree
}
func Codec() bool {
	return d.Codec
}
func Query() bool {
	return d.Query
}
func LSP() bool {
	return d.LSP
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
