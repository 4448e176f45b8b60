// cardstack - a card-tree chat client for local LLMs.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/config"
	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/storage"
	"github.com/jeranaias/cardstack-tui/internal/ui/stack"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Printf("cardstack %s (%s)\n", Version, GitCommit)
			return
		case "config":
			runConfig()
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	if err := runTUI(); err != nil {
		fmt.Fprintf(os.Stderr, "cardstack: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cardstack - branching chat for local LLMs

Usage:
  cardstack            start the TUI
  cardstack config     print the config file path (writing defaults if absent)
  cardstack version    print version information`)
}

// runConfig prints the config path, materializing defaults on first run.
func runConfig() {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cardstack: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "cardstack: write defaults: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println(path)
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.Storage.DatabasePath
	if dbPath == "" {
		dbPath, err = storage.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	}
	projects, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open project store: %w", err)
	}
	defer projects.Close()

	project, err := openLastProject(projects)
	if err != nil {
		return err
	}

	m := stack.New(cfg, projects, project, stack.NewOllamaClient(cfg))
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Config hot reload: watcher callbacks re-enter the update loop as
	// messages, so a bad file never tears the session down.
	if watcher := startConfigWatcher(p); watcher != nil {
		defer watcher.Close()
	}

	_, err = p.Run()
	return err
}

// openLastProject resumes the first project in the user's ordering, or
// starts a fresh one on first launch.
func openLastProject(projects *storage.ProjectStore) (*model.Project, error) {
	ctx := context.Background()

	metas, err := projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if len(metas) == 0 {
		return model.NewProject("Scratch"), nil
	}

	p, err := projects.Load(ctx, metas[0].ID)
	if err != nil {
		// A single damaged project must not brick startup
		fmt.Fprintf(os.Stderr, "cardstack: open %q: %v; starting fresh\n", metas[0].Name, err)
		return model.NewProject("Scratch"), nil
	}
	return p, nil
}

func startConfigWatcher(p *tea.Program) *config.Watcher {
	path, err := config.ConfigPath()
	if err != nil {
		return nil
	}

	watcher, err := config.NewWatcher(path,
		func(cfg *config.Config) {
			p.Send(stack.ConfigReloadedMsg{Config: cfg})
		},
		func(err error) {
			p.Send(stack.ConfigErrorMsg{Err: err})
		},
	)
	if err != nil {
		return nil
	}
	watcher.Start(context.Background())
	return watcher
}
