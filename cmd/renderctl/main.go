package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-respond/internal/logging"
	"github.com/goliatone/go-respond/internal/prompt"
	"github.com/goliatone/go-respond/pkg/config"
	"github.com/goliatone/go-respond/pkg/renderer"
	"github.com/goliatone/go-respond/pkg/renderers/extra"
)

const noParent = "(none)"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, prompt.NewSurveyDriver()))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver prompt.Driver) int {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	level := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	format := fs.String("log-format", "console", "log format (console, json)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <list|check|init> [command flags]\n\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logging.New(*level, *format, stderr)
	defer func() { _ = logger.Sync() }()

	reg, err := newRegistry(logger)
	if err != nil {
		fmt.Fprintf(stderr, "renderctl: %v\n", err)
		return 1
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	switch rest[0] {
	case "list":
		for _, name := range reg.Snapshot().Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	case "check":
		return runCheck(rest[1:], stdout, stderr, reg, logger)
	case "init":
		return runInitCommand(ctx, rest[1:], stdout, stderr, reg, driver)
	default:
		fmt.Fprintf(stderr, "renderctl: unknown command %q\n", rest[0])
		fs.Usage()
		return 2
	}
}

func newRegistry(logger *zap.Logger) (*renderer.Registry, error) {
	reg := renderer.NewRegistry(renderer.WithLogger(logger))
	if err := extra.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func runCheck(args []string, stdout, stderr io.Writer, reg *renderer.Registry, logger *zap.Logger) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "renderers.yaml", "controller configuration file (JSON or YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadFile(*path)
	if err != nil {
		fmt.Fprintf(stderr, "check %s: %v\n", *path, err)
		return 1
	}
	controllers, err := config.Build(reg, cfg, renderer.WithControllerLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "check %s: %v\n", *path, err)
		return 1
	}

	for _, decl := range cfg.Controllers {
		ctrl := controllers[decl.Name]
		fmt.Fprintf(stdout, "%s: %s\n", decl.Name, strings.Join(ctrl.Renderers().Names(), ", "))
	}
	return 0
}

func runInitCommand(ctx context.Context, args []string, stdout, stderr io.Writer, reg *renderer.Registry, driver prompt.Driver) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := runInit(ctx, driver, reg)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(stderr, "init aborted")
			return 130
		}
		fmt.Fprintf(stderr, "init: %v\n", err)
		return 1
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "init: %v\n", err)
		return 1
	}
	if *output == "" {
		_, _ = stdout.Write(data)
		return 0
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(stderr, "init: write output: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Configuration written to %s\n", *output)
	return 0
}

// runInit asks for controller declarations until an empty name is entered.
func runInit(ctx context.Context, driver prompt.Driver, reg *renderer.Registry) (config.Config, error) {
	var cfg config.Config
	available := reg.Snapshot().Names()
	declared := map[string]struct{}{}

	for {
		name, err := driver.Input(ctx, prompt.InputConfig{
			Message: "Controller name (empty to finish):",
			Validator: func(value string) error {
				if _, exists := declared[strings.TrimSpace(value)]; exists {
					return fmt.Errorf("controller %q already declared", value)
				}
				return nil
			},
		})
		if err != nil {
			return config.Config{}, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			break
		}
		if _, exists := declared[name]; exists {
			return config.Config{}, fmt.Errorf("controller %q already declared", name)
		}

		decl := config.Controller{Name: name}

		if len(cfg.Controllers) > 0 {
			parents := []string{noParent}
			for _, existing := range cfg.Controllers {
				parents = append(parents, existing.Name)
			}
			idx, err := driver.Select(ctx, prompt.SelectConfig{
				Message: "Parent controller:",
				Options: parents,
			})
			if err != nil {
				return config.Config{}, err
			}
			if idx > 0 && idx < len(parents) {
				decl.Parent = parents[idx]
			}
		}

		all, err := driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Opt into every registered renderer?",
		})
		if err != nil {
			return config.Config{}, err
		}
		decl.All = all

		if !all {
			picked, err := driver.MultiSelect(ctx, prompt.SelectConfig{
				Message: "Renderers:",
				Options: available,
			})
			if err != nil {
				return config.Config{}, err
			}
			decl.Renderers = prompt.Pick(available, picked)
		}

		cfg.Controllers = append(cfg.Controllers, decl)
		declared[name] = struct{}{}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
