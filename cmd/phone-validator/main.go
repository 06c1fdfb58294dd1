package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"phonechecker/internal/validation"
	"phonechecker/platform/config"
	"phonechecker/platform/logger"

	"github.com/spf13/pflag"
)

const (
	formatJSON = "json"
	formatText = "text"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run validates the numbers named in args. Validation failures are reported
// in the output and still exit 0; only usage and config errors do not.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("phone-validator", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	region := fs.String("region", "", "Default region code (e.g., SA, US)")
	bulk := fs.Bool("bulk", false, "Treat input as comma-separated list")
	format := fs.String("format", formatJSON, "Output format: json or text")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: phone-validator PHONE_NUMBER [--region CODE] [--bulk] [--format json|text]")
		fmt.Fprintln(stderr, "Validate phone numbers against the international numbering plan.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if *format != formatJSON && *format != formatText {
		fmt.Fprintf(stderr, "invalid --format %q: choose json or text\n", *format)
		fs.Usage()
		return 2
	}

	cfg, err := config.LoadValidator()
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return 1
	}
	if *region == "" {
		*region = cfg.GetDefaultRegion()
	}

	log := logger.NewWriter(stderr, "")
	svc := validation.NewService(log)
	ctx := context.Background()
	input := fs.Arg(0)

	if *bulk {
		results := svc.ValidateBulk(ctx, validation.SplitBulk(input), *region)
		err = write(stdout, *format, results, func(w io.Writer) error {
			return validation.WriteTextBulk(w, results)
		})
	} else {
		result := svc.Validate(ctx, input, *region)
		err = write(stdout, *format, result, func(w io.Writer) error {
			return validation.WriteText(w, result)
		})
	}
	if err != nil {
		log.Error("failed to write output", "error", err)
		return 1
	}
	return 0
}

func write(w io.Writer, format string, v interface{}, text func(io.Writer) error) error {
	if format == formatText {
		return text(w)
	}
	return validation.WriteJSON(w, v)
}
