package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/odatajson"
	"github.com/reoring/odatajson/edm"
	"github.com/reoring/odatajson/edm/csdl"
	"github.com/reoring/odatajson/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "decode":
		os.Exit(decodeCmd(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
	case "types":
		os.Exit(typesCmd(os.Args[2:], os.Stdout, os.Stderr))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "odatadecode CLI\n\nUsage:\n  odatadecode decode -schema schema.yaml -type NS.EntityType [-collection] [-driver gojson|json|jsontext] [-max-depth N] [-max-bytes N] [-lang en|ja] [-v] [input.json]\n  odatadecode types -schema schema.yaml|schema.xml")
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func decodeCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		schemaPath, typeName, driverName, lang string
		collection, verbose                    bool
		maxDepth                               int
		maxBytes                               int64
	)
	fs.StringVar(&schemaPath, "schema", "", "schema file (.yaml, .yml, .xml, .edmx)")
	fs.StringVar(&typeName, "type", "", "qualified entity type name")
	fs.BoolVar(&collection, "collection", false, "decode an entity collection ({\"value\": [...]})")
	fs.StringVar(&driverName, "driver", "gojson", "json tokenizer: gojson, json or jsontext")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	fs.StringVar(&lang, "lang", "en", "error message language: en or ja")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if schemaPath == "" || typeName == "" {
		fs.Usage()
		return 2
	}
	log := newLogger(stderr, verbose)
	i18n.SetLanguage(lang)

	model, err := csdl.Load(schemaPath)
	if err != nil {
		log.Error("failed to load schema", slog.String("schema", schemaPath), "err", err.Error())
		return 1
	}
	et, ok := model.EntityType(typeName)
	if !ok {
		log.Error("unknown entity type", slog.String("type", typeName))
		return 1
	}
	driver, err := odatajson.DriverByName(driverName)
	if err != nil {
		log.Error("invalid driver", "err", err.Error())
		return 2
	}

	in := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Error("failed to open input", "err", err.Error())
			return 1
		}
		defer f.Close()
		in = f
	}

	d := odatajson.New(
		odatajson.WithDriver(driver),
		odatajson.WithMaxDepth(maxDepth),
		odatajson.WithMaxBytes(maxBytes),
	)
	start := time.Now()
	log.Debug("decode", slog.String("type", typeName), slog.String("driver", driver.Name()), slog.Bool("collection", collection))

	var result any
	if collection {
		result, err = d.EntityCollection(context.Background(), in, et)
	} else {
		result, err = d.Entity(context.Background(), in, et)
	}
	if err != nil {
		if e, ok := odatajson.AsError(err); ok {
			log.Error(e.Message, slog.String("key", string(e.Key)), slog.String("path", e.Path))
		} else {
			log.Error("decode failed", "err", err.Error())
		}
		return 1
	}
	log.Debug("decoded", slog.Duration("elapsed", time.Since(start)))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error("failed to encode result", "err", err.Error())
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func typesCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("types", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema file (.yaml, .yml, .xml, .edmx)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if schemaPath == "" {
		fs.Usage()
		return 2
	}
	model, err := csdl.Load(schemaPath)
	if err != nil {
		newLogger(stderr, false).Error("failed to load schema", slog.String("schema", schemaPath), "err", err.Error())
		return 1
	}
	for _, s := range model.Schemas() {
		for _, t := range s.Types() {
			fmt.Fprintf(stdout, "%s\t%s\n", t.Kind(), t.FullQualifiedName())
			if et, ok := t.(*edm.EntityType); ok {
				for _, name := range et.NavigationPropertyNames() {
					nav := et.NavigationProperty(name)
					card := "1"
					if nav.Collection {
						card = "*"
					}
					fmt.Fprintf(stdout, "\t-> %s (%s %s)\n", name, card, nav.Target.FullQualifiedName())
				}
			}
		}
	}
	return 0
}
