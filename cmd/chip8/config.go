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
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"emul8/internal/host"
)

// Config defines program configuration.
type Config struct {
	Rom      string // Path to the ROM file to load.
	Clock    int    // Instructions executed per second.
	FPS      int    // Frames presented per second.
	Scale    int    // Amount by which each pixel is scaled.
	Seed     uint64 // Random seed; zero picks a fresh one.
	Debug    bool   // Log every executed instruction.
	Headless int    // Run this many cycles without a window, then print the display.
	Version  bool   // Print version information and exit.
}

var errUsage = errors.New("usage")

// parseArgs parses command line arguments. Usage and flag errors are written
// to out.
func parseArgs(args []string, out io.Writer) (*Config, error) {
	c := Config{
		Clock: 700,
		FPS:   60,
		Scale: 10,
	}

	fs := flag.NewFlagSet("chip8", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "%s [options] <rom file>\n", fs.Name())
		fs.PrintDefaults()
	}

	fs.IntVar(&c.Clock, "clock", c.Clock, "Instructions executed per second.")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Frames drawn per second.")
	fs.IntVar(&c.Scale, "scale", c.Scale, "Pixel scale factor for the display.")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator (0 for a random seed).")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Log every executed instruction.")
	fs.IntVar(&c.Headless, "headless", c.Headless, "Run this many cycles without a window and print the display.")
	fs.BoolVar(&c.Version, "version", c.Version, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.Version {
		return &c, nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errUsage
	}
	c.Rom = fs.Arg(0)

	if c.Clock <= 0 || c.FPS <= 0 {
		return nil, errors.Errorf("clock and fps must be positive, have %d and %d", c.Clock, c.FPS)
	}
	if c.Headless < 0 {
		return nil, errors.Errorf("headless cycle count must not be negative, have %d", c.Headless)
	}
	return &c, nil
}

func (c *Config) rates() host.Config {
	return host.Config{
		Clock: time.Second / time.Duration(c.Clock),
		Frame: time.Second / time.Duration(c.FPS),
	}
}
