/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"emul8/chip8"
	"emul8/internal/gui"
	"emul8/internal/host"
)

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	if cfg.Version {
		fmt.Println(Version())
		return
	}

	logger := newLogger(os.Stderr, cfg.Debug)
	slog.SetDefault(logger)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("emulation failed", "rom", cfg.Rom, "err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(cfg *Config, logger *slog.Logger, out io.Writer) error {
	cpu, err := load(cfg, logger)
	if err != nil {
		return err
	}

	session := host.NewSession(cpu, logger)

	if cfg.Headless > 0 {
		err := session.RunCycles(cfg.Headless)
		fmt.Fprint(out, session.Screen())
		return err
	}

	window := gui.NewWindow(session, "Chip-8 Emulator", cfg.Scale)
	return window.Run(context.Background(), cfg.rates())
}

// load opens the ROM file and builds a processor from it. ROMs that do not fit
// in program memory are rejected here; the processor itself only truncates.
func load(cfg *Config, logger *slog.Logger) (*chip8.Processor, error) {
	f, err := os.Open(cfg.Rom)
	if err != nil {
		return nil, errors.Wrap(err, "open rom")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat rom")
	}
	if info.Size() > int64(chip8.MaxRomSize) {
		return nil, errors.Errorf("rom is %d bytes, limit is %d", info.Size(), chip8.MaxRomSize)
	}

	opts := []chip8.Option{chip8.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, chip8.WithRandom(chip8.NewSeededRandom(cfg.Seed)))
	}

	cpu, err := chip8.New(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", cfg.Rom)
	}

	logger.Info("rom loaded", "rom", cfg.Rom, "bytes", info.Size())
	return cpu, nil
}
