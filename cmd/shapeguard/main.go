package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	j "github.com/goccy/go-json"

	shapeguard "github.com/shapeguard/shapeguard"
	"github.com/shapeguard/shapeguard/i18n"
	"github.com/shapeguard/shapeguard/shapefile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "classify":
		classifyCmd(os.Args[2:])
	case "export":
		exportCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "shapeguard CLI\n\nUsage:\n  shapeguard classify -shapes shapes.yaml -shape NAME -policy structural|tag|thorough|exact [-in values.jsonl] [-lang en|ja]\n  shapeguard export -shapes shapes.yaml -shape NAME\n\nNotes:\n  - classify reads one JSON value per line and reports a verdict per item;\n    a malformed item never aborts the run.")
}

func classifyCmd(args []string) {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	var shapesPath, shapeName, policy, in, lang string
	fs.StringVar(&shapesPath, "shapes", "", "YAML file with shape descriptors")
	fs.StringVar(&shapeName, "shape", "", "name of the shape to classify against")
	fs.StringVar(&policy, "policy", "structural", "classification policy")
	fs.StringVar(&in, "in", "", "input file with one JSON value per line (default stdin)")
	fs.StringVar(&lang, "lang", "en", "message language (en/ja)")
	_ = fs.Parse(args)
	if shapesPath == "" || shapeName == "" {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(lang)

	d, err := loadShape(shapesPath, shapeName)
	if err != nil {
		fatalf("load shapes: %v", err)
	}

	r := os.Stdin
	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			fatalf("open input: %v", err)
		}
		defer f.Close()
		r = f
	}

	ctx := context.Background()
	failed := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		v, err := shapeguard.DecodeValue(shapeguard.JSONBytes(raw))
		if err != nil {
			failed++
			fmt.Printf("%d: decode failed: %v\n", line, err)
			continue
		}
		if err := classify(ctx, policy, v, d); err != nil {
			failed++
			fmt.Printf("%d: no: %v\n", line, err)
			continue
		}
		fmt.Printf("%d: ok\n", line)
	}
	if err := sc.Err(); err != nil {
		fatalf("read input: %v", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func classify(ctx context.Context, policy string, v any, d shapeguard.Descriptor) error {
	switch policy {
	case "structural":
		return shapeguard.CheckStructural(ctx, v, d)
	case "tag":
		if d.TagField() == "" {
			fatalf("shape %q has no tag; the tag policy needs one", d.Name())
		}
		return shapeguard.CheckTag(ctx, v, d.TagField(), d.TagValue())
	case "thorough":
		return shapeguard.CheckThorough(ctx, v, d)
	case "exact":
		return shapeguard.CheckExact(ctx, v, d)
	default:
		fatalf("unknown policy %q", policy)
		return nil
	}
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var shapesPath, shapeName string
	fs.StringVar(&shapesPath, "shapes", "", "YAML file with shape descriptors")
	fs.StringVar(&shapeName, "shape", "", "name of the shape to export")
	_ = fs.Parse(args)
	if shapesPath == "" || shapeName == "" {
		fs.Usage()
		os.Exit(2)
	}
	d, err := loadShape(shapesPath, shapeName)
	if err != nil {
		fatalf("load shapes: %v", err)
	}
	js, err := d.JSONSchema()
	if err != nil {
		fatalf("export: %v", err)
	}
	b, err := marshalIndent(js)
	if err != nil {
		fatalf("export: %v", err)
	}
	fmt.Println(string(b))
}

func loadShape(path, name string) (shapeguard.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return shapeguard.Descriptor{}, err
	}
	ds, err := shapefile.LoadAll(data)
	if err != nil {
		return shapeguard.Descriptor{}, err
	}
	for _, d := range ds {
		if d.Name() == name {
			return d, nil
		}
	}
	return shapeguard.Descriptor{}, fmt.Errorf("shape %q not found in %s", name, path)
}

func marshalIndent(v any) ([]byte, error) { return j.MarshalIndent(v, "", "  ") }

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
