// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordkey input engine as a msgpack bridge for a host
text field, or as an interactive terminal playground.

wordkey turns soft keyboard events (key taps, layer swipes, delete gestures,
shift presses, language switches) into document edits and a ranked
suggestion bar. The host keeps the real document and applies the returned
edits; wordkey only ever sees the text before the cursor.

# Usage

Start the bridge on stdin/stdout:

	wordkey

Enable debug logging on stderr and use a custom config:

	wordkey -d -config ./config.toml

Try the keyboard in the terminal:

	wordkey -c

Pick the language cycle for this run:

	wordkey -c -lang highlevel,english

# Configuration

The config file is created with defaults on first run:

	[keyboard]
	indent_unit = "    "
	repeat_interval_ms = 100
	languages = ["english", "highlevel"]
	profile_dir = ""

	[suggest]
	limit = 12
	fold_case = true
	cache_size = 128

In bridge mode the file is watched and suggestion settings are applied
without a restart. Changing the language list needs a restart.

# Languages

"english" and "highlevel" are built in. A profile directory may add or
override profiles with <id>.toml or <id>.yaml files holding the name, the
secondary and tertiary key layers, the auto-capitalization suffixes and a
vocabulary (text, .bin chunks or SQLite).

# Command Line Flags

	-version    Show current version
	-d          Enable debug logging
	-c          Run the terminal playground instead of the bridge
	-config     Path to config.toml
	-profiles   Directory with extra language profiles
	-lang       Comma separated profile ids, overrides the config
	-limit      Suggestions shown in the playground
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/wordkey/internal/cli"
	"github.com/bastiangx/wordkey/internal/logger"
	"github.com/bastiangx/wordkey/internal/utils"
	"github.com/bastiangx/wordkey/pkg/config"
	"github.com/bastiangx/wordkey/pkg/language"
	"github.com/bastiangx/wordkey/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordkey"
	gh      = "https://github.com/bastiangx/wordkey"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, profiles and the selected front end together.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the terminal playground")
	configPath := flag.String("config", "", "Path to config.toml")
	profileDir := flag.String("profiles", "", "Directory with extra language profiles")
	languages := flag.String("lang", "", "Comma separated language profile ids")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions shown in the playground (1-9)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: %s", config.GetActiveConfigPath(activePath))

	if *languages != "" {
		cfg.Keyboard.Languages = splitList(*languages)
	}
	if *profileDir != "" {
		cfg.Keyboard.ProfileDir = *profileDir
	}

	resolvedProfiles := ""
	if pathResolver, err := utils.NewPathResolver(); err != nil {
		log.Warnf("Failed to initialize path resolver: %v. Using built-in profiles only", err)
	} else {
		for k, v := range pathResolver.RuntimeInfo() {
			log.Debug("runtime", k, v)
		}
		resolvedProfiles = pathResolver.ProfileDir(cfg.Keyboard.ProfileDir)
	}

	profiles, err := language.LoadProfiles(cfg.Keyboard.Languages, resolvedProfiles, cfg.DictOptions())
	if err != nil {
		log.Fatalf("Failed to load language profiles: %v", err)
	}
	cycle, err := language.NewCycle(profiles...)
	if err != nil {
		log.Fatalf("Failed to build language cycle: %v", err)
	}

	if *cliMode {
		cfg.CLI.DefaultLimit = *limit
		log.Debug("Playground", "languages", cfg.Keyboard.Languages, "limit", *limit)
		if err := cli.NewInputHandler(cycle, cfg).Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(cycle, resolvedProfiles)
	srv := server.NewServer(cycle, cfg, activePath)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordkey ] keyboard input engine with ranked suggestions")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info on stderr; stdout carries the protocol.
func showStartupInfo(cycle *language.Cycle, profileDir string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	names := make([]string, 0, cycle.Len())
	for _, p := range cycle.Profiles() {
		names = append(names, p.Name)
	}
	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("languages: %s", strings.Join(names, ", "))
	if profileDir != "" {
		log.Infof("profile dir: ( %s )", profileDir)
	}
	log.Info("status: ready")
}
