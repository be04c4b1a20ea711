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

// Package host drives a chip8.Processor from the outside world: it owns the
// peripherals, runs the fixed rate loop and presents the display.
package host

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"emul8/chip8"
)

const (
	ClockRate time.Duration = time.Second / 700 // 700hz
	FrameRate time.Duration = time.Second / 60  // 60hz
)

// Machine is the part of the processor the host needs.
type Machine interface {
	Step(screen chip8.Screen, keys chip8.Keys) error
	SoundActive() bool
}

// Config holds the two independent rates of the loop.
type Config struct {
	Clock time.Duration // interval between instructions
	Frame time.Duration // interval between presented frames
}

func DefaultConfig() Config {
	return Config{Clock: ClockRate, Frame: FrameRate}
}

// Session is one emulation run. Key events and instruction steps may arrive
// from different goroutines; the session serialises them so that a step
// always sees settled key and display state.
type Session struct {
	mu      sync.Mutex
	cpu     Machine
	display *chip8.Framebuffer
	keys    *chip8.Keypad
	cycles  uint64
	log     *slog.Logger
}

func NewSession(cpu Machine, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cpu:     cpu,
		display: chip8.NewFramebuffer(),
		keys:    chip8.NewKeypad(),
		log:     log,
	}
}

func (s *Session) Press(key uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.Press(key)
}

func (s *Session) Release(key uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.Release(key)
}

// Cycles returns the number of instructions executed so far.
func (s *Session) Cycles() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycles
}

func (s *Session) SoundActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cpu.SoundActive()
}

func (s *Session) step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cpu.Step(s.display, s.keys); err != nil {
		return errors.Wrapf(err, "cycle %d", s.cycles)
	}
	s.cycles++
	return nil
}

// RunCycles executes n instructions back to back, stopping at the first
// fault.
func (s *Session) RunCycles(n int) error {
	for range n {
		if err := s.step(); err != nil {
			s.log.Error("fault", "err", err)
			return err
		}
	}
	return nil
}

// Run steps the processor every cfg.Clock and calls present every cfg.Frame
// until ctx is cancelled or the processor faults. Cancellation is not an
// error.
func (s *Session) Run(ctx context.Context, cfg Config, present func()) error {
	if cfg.Clock <= 0 || cfg.Frame <= 0 {
		return errors.Errorf("invalid rates: clock %v, frame %v", cfg.Clock, cfg.Frame)
	}

	cpuTicker := time.NewTicker(cfg.Clock)
	defer cpuTicker.Stop()

	frameTicker := time.NewTicker(cfg.Frame)
	defer frameTicker.Stop()

	s.log.Info("session started", "clock", cfg.Clock, "frame", cfg.Frame)
	defer func() {
		s.log.Info("session stopped", "cycles", s.Cycles())
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-cpuTicker.C:
			if err := s.step(); err != nil {
				s.log.Error("fault", "err", err)
				return err
			}
		case <-frameTicker.C:
			if present != nil {
				present()
			}
		}
	}
}

// Paint copies the display into dst, which must cover at least
// chip8.Width x chip8.Height pixels.
func (s *Session) Paint(dst *image.RGBA, on, off color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for y := range chip8.Height {
		for x := range chip8.Width {
			c := off
			if s.display.Pixel(x, y) == 1 {
				c = on
			}
			dst.Set(x, y, c)
		}
	}
}

// Screen returns the display as text.
func (s *Session) Screen() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display.String()
}
