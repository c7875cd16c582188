package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tweetmoji/predictor"
)

type cliOptions struct {
	configPath string
	inputPath  string
	top        int
	texts      []string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("tweetmoji-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("tweetmoji-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.inputPath, "input", "", "Text file with one input per line")
	flag.IntVar(&opts.top, "top", 3, "Number of top classes to print per input")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [--input FILE | TEXT...] [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.texts = flag.Args()

	if opts.inputPath == "" && len(opts.texts) == 0 {
		flag.Usage()
		return opts, errors.New("missing input: pass --input FILE or text arguments")
	}
	if opts.top <= 0 {
		return opts, errors.New("--top must be positive")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := predictor.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	texts := opts.texts
	if opts.inputPath != "" {
		lines, err := predictor.ParseTextFile(opts.inputPath)
		if err != nil {
			return err
		}
		texts = append(lines, texts...)
	}
	if len(texts) == 0 {
		return errors.New("input does not contain any texts")
	}

	pipeline, err := predictor.NewPipeline(cfg, nil)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	defer pipeline.Close()

	ctx := context.Background()
	for _, text := range texts {
		preds, err := pipeline.Predict(ctx, text)
		if err != nil {
			return fmt.Errorf("predict %q: %w", text, err)
		}
		scores, err := predictor.Rank(preds)
		if err != nil {
			return fmt.Errorf("predict %q: %w", text, err)
		}
		top := predictor.TopK(scores, opts.top)
		percentages := predictor.Percentages(top)

		parts := make([]string, len(top))
		for i, s := range top {
			parts[i] = fmt.Sprintf("class %d (%.1f%%)", s.ClassID, percentages[i])
		}
		fmt.Printf("%s\t%s\n", text, strings.Join(parts, "  "))
	}
	return nil
}
