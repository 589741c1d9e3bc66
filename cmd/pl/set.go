package main

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/plkit/plkit/codec"
	"github.com/plkit/plkit/value"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set <path> <value> [file]", cli.ErrUsage)
	}
	item, err := parseValueArg(cfg.Kind, args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	path := normPath(args[0])
	file := fileArg(args, 2)
	doc, err := getDocFile(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	n, err := doc.Find(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if n == nil {
		return fmt.Errorf("no value at %s (use 'pl insert' to add one)", path)
	}
	doc.Editor().SetValue(n, item)
	return writeResult(cfg.MainConfig, cc, doc, file, cfg.Write)
}

// parseValueArg builds the value for a set or insert argument.  With
// no kind the argument is parsed as a yaml document; a kind forces a
// scalar interpretation of the raw argument text.
func parseValueArg(kind, arg string) (*value.Value, error) {
	switch strings.ToLower(kind) {
	case "":
		v, err := codec.Decode([]byte(arg), codec.YAMLFormat)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", arg, err)
		}
		return v, nil
	case "string":
		return value.FromString(arg), nil
	case "number":
		if i, err := strconv.ParseInt(arg, 0, 64); err == nil {
			return value.FromInt(i), nil
		}
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", arg)
		}
		return value.FromFloat(f), nil
	case "boolean", "bool":
		b, err := strconv.ParseBool(arg)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a boolean", arg)
		}
		return value.FromBool(b), nil
	case "date":
		t, err := time.Parse(time.RFC3339, arg)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an RFC 3339 date", arg)
		}
		return value.FromDate(t), nil
	case "data":
		d, err := base64.StdEncoding.DecodeString(arg)
		if err != nil {
			return nil, fmt.Errorf("value %q is not base64 data", arg)
		}
		return value.FromData(d), nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}
