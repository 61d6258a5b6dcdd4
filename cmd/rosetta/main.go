package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	rosetta "github.com/bartekchlebek/Rosetta"
	"github.com/bartekchlebek/Rosetta/source"
	"github.com/bartekchlebek/Rosetta/source/gojson"
	stdjson "github.com/bartekchlebek/Rosetta/source/json"
	"github.com/bartekchlebek/Rosetta/source/yaml"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		os.Exit(checkCmd(os.Args[2:], os.Stdout))
	case "convert":
		os.Exit(convertCmd(os.Args[2:], os.Stdout))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "rosetta CLI\n\nUsage:\n  rosetta check [-driver go-json|json|yaml] [-max-depth N] [-max-bytes N] [-dup] [-v] file\n  rosetta convert -from json|yaml -to json|yaml [-max-depth N] [-v] file\n\nA file of \"-\" reads stdin.")
}

type limitFlags struct {
	maxDepth int
	maxBytes int64
	dup      bool
	verbose  bool
}

func (l *limitFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&l.maxDepth, "max-depth", rosetta.DefaultMaxDepth, "maximum nesting depth")
	fs.Int64Var(&l.maxBytes, "max-bytes", 0, "maximum input size in bytes (0 disables)")
	fs.BoolVar(&l.dup, "dup", false, "reject duplicate object keys")
	fs.BoolVar(&l.verbose, "v", false, "enable debug logs")
}

func (l *limitFlags) options(d source.Driver, w io.Writer) []rosetta.Option {
	if l.verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			rosetta.SetLogger(logger)
		}
	}
	return []rosetta.Option{
		rosetta.WithDriver(d),
		rosetta.WithMaxDepth(l.maxDepth),
		rosetta.WithMaxBytes(l.maxBytes),
		rosetta.WithDuplicateKeys(l.dup),
		rosetta.WithHandler(func(report string) { fmt.Fprintln(w, report) }),
	}
}

// checkCmd parses a document and prints its diagnostics.
func checkCmd(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var driverName string
	var lf limitFlags
	fs.StringVar(&driverName, "driver", "go-json", "parser: go-json, json or yaml")
	lf.register(fs)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	d, err := driverByName(driverName)
	if err != nil {
		return fail(err)
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	if _, err := rosetta.DecodeValue(data, rosetta.Raw, lf.options(d, os.Stderr)...); err != nil {
		return 1
	}
	fmt.Fprintln(out, "ok")
	return 0
}

// convertCmd re-encodes a document between JSON and YAML.
func convertCmd(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var from, to string
	var lf limitFlags
	fs.StringVar(&from, "from", "json", "input format: json or yaml")
	fs.StringVar(&to, "to", "yaml", "output format: json or yaml")
	lf.register(fs)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	in, err := driverByName(from)
	if err != nil {
		return fail(err)
	}
	dst, err := driverByName(to)
	if err != nil {
		return fail(err)
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	tree, err := rosetta.DecodeValue(data, rosetta.Raw, lf.options(in, os.Stderr)...)
	if err != nil {
		return 1
	}
	encoded, err := rosetta.EncodeValue(tree, rosetta.Raw, lf.options(dst, os.Stderr)...)
	if err != nil {
		return fail(err)
	}
	_, _ = out.Write(encoded)
	if len(encoded) > 0 && encoded[len(encoded)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return 0
}

func driverByName(name string) (source.Driver, error) {
	switch strings.ToLower(name) {
	case "go-json", "gojson":
		return gojson.Driver(), nil
	case "json", "encoding/json":
		return stdjson.Driver(), nil
	case "yaml", "yml":
		return yaml.Driver(), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", name)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}
