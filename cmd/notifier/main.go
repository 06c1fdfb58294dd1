package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"phonechecker/internal/notifier"
	"phonechecker/platform/config"
	"phonechecker/platform/logger"
	"phonechecker/platform/validator"
)

const (
	actionActivate = "activate"
	actionNotify   = "notify"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stdout)
		return 1
	}

	action, username := args[0], args[1]
	switch {
	case action == actionActivate && len(args) >= 3:
	case action == actionNotify && len(args) >= 4:
	default:
		fmt.Fprintln(stdout, "Invalid arguments")
		usage(stdout)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return 1
	}

	audit, err := logger.NewFile(cfg.GetBotLogPath())
	if err != nil {
		audit = logger.NewWriter(stderr, cfg.Env)
		audit.Warn("bot log unavailable, logging to stderr", "path", cfg.GetBotLogPath(), "error", err)
	}
	defer func() {
		_ = audit.Close()
	}()

	svc := notifier.NewService(notifier.NewFileStore(cfg.GetMessageLogPath()), stdout, audit, validator.New())
	ctx := context.Background()

	var result notifier.SendResult
	switch action {
	case actionActivate:
		result = svc.SendActivationCode(ctx, username, args[2], cfg.GetActivationTTL())
	case actionNotify:
		result = svc.SendNotification(ctx, username, args[2], args[3])
	}

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(stderr, "failed to write result: "+err.Error())
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notifier <action> <username> [code/title] [message]")
	fmt.Fprintln(w, "Actions: activate, notify")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  notifier activate john_doe 123456")
	fmt.Fprintln(w, "  notifier notify john_doe 'Bulk Check Completed' 'Your request has been processed'")
}
