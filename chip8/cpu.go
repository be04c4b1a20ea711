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

// Package chip8 implements the CHIP-8 instruction interpreter together with
// the framebuffer and keypad peripherals it operates on.
package chip8

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

const (
	MemorySize          int    = 4096
	RegisterCount       int    = 16
	StackDepth          int    = 16
	FontStartAddress    uint16 = 0x000
	LastAddress         uint16 = 0xFFE
	ProgramStartAddress uint16 = 0x200
	FlagRegister        uint8  = 0xF

	// MaxRomSize is the largest program that fits between
	// ProgramStartAddress and the end of memory.
	MaxRomSize int = MemorySize - int(ProgramStartAddress)

	addressMask uint16 = 0xFFF
	glyphSize   uint16 = 5
)

var fontSet = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Screen is the pixel plane the processor draws onto.
type Screen interface {
	Clear()
	DrawSprite(x, y uint8, sprite []byte) bool
}

// Keys is the key state the processor reads from.
type Keys interface {
	IsPressed(key uint8) bool
	FirstPressed() (uint8, bool)
}

// Option configures a Processor at construction time.
type Option func(*Processor)

// WithRandom replaces the source used by the Cxkk instruction. A nil source
// keeps the default.
func WithRandom(r RandomSource) Option {
	return func(p *Processor) {
		if r != nil {
			p.rand = r
		}
	}
}

// WithLogger sets the logger used for instruction tracing. A nil logger keeps
// tracing disabled.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// Processor holds the complete state of one CHIP-8 virtual machine.
type Processor struct {
	memory [MemorySize]byte
	v      [RegisterCount]byte
	stack  [StackDepth]uint16
	sp     uint8
	pc     uint16
	i      uint16
	delay  uint8
	sound  uint8

	rand RandomSource
	log  *slog.Logger
}

// New creates a processor with the glyph set at FontStartAddress and the ROM
// read from r at ProgramStartAddress. A ROM larger than the remaining memory is
// truncated; reading stops once memory is full.
func New(r io.Reader, opts ...Option) (*Processor, error) {
	p := &Processor{
		pc:   ProgramStartAddress,
		rand: NewRandom(),
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	copy(p.memory[FontStartAddress:], fontSet[:])

	n, err := io.ReadFull(r, p.memory[ProgramStartAddress:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &RomLoadError{Read: n, Err: err}
	}

	p.log.Debug("rom loaded", "bytes", n)
	return p, nil
}

// Step executes exactly one instruction. Timers are decremented only when the
// instruction completes without a fault.
func (p *Processor) Step(screen Screen, keys Keys) error {
	if p.pc > LastAddress {
		return errors.Wrapf(ErrProgramCounterOutOfRange, "pc 0x%04X", p.pc)
	}

	op := p.OpcodeAt(p.pc)

	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		p.log.Debug("exec",
			"pc", fmt.Sprintf("0x%03X", p.pc),
			"opcode", fmt.Sprintf("0x%04X", uint16(op)),
			"instr", op.String(),
		)
	}

	p.pc += 2

	if err := p.execute(op, screen, keys); err != nil {
		return err
	}

	if p.delay > 0 {
		p.delay--
	}
	if p.sound > 0 {
		p.sound--
	}
	return nil
}

func (p *Processor) execute(op Opcode, screen Screen, keys Keys) error {
	switch op.kind() {
	case 0x0:
		switch uint16(op) {
		case 0x00E0:
			clearScreen(screen)
		case 0x00EE:
			return returnFromSubroutine(p)
		default:
			return unsupported(op)
		}
	case 0x1:
		jumpToLocation(p, op.nnn())
	case 0x2:
		return callSubroutine(p, op.nnn())
	case 0x3:
		skipIfXEqualsKK(p, op.x(), op.kk())
	case 0x4:
		skipIfXNotEqualsKK(p, op.x(), op.kk())
	case 0x5:
		if op.n() != 0x0 {
			return unknown(op)
		}
		skipIfXEqualsY(p, op.x(), op.y())
	case 0x6:
		setXToKK(p, op.x(), op.kk())
	case 0x7:
		addKKToX(p, op.x(), op.kk())
	case 0x8:
		switch op.n() {
		case 0x0:
			setXToY(p, op.x(), op.y())
		case 0x1:
			orXY(p, op.x(), op.y())
		case 0x2:
			andXY(p, op.x(), op.y())
		case 0x3:
			xorXY(p, op.x(), op.y())
		case 0x4:
			addXY(p, op.x(), op.y())
		case 0x5:
			subtractYFromX(p, op.x(), op.y())
		case 0x6:
			shiftRightX(p, op.x())
		case 0x7:
			subtractXFromY(p, op.x(), op.y())
		case 0xE:
			shiftLeftX(p, op.x())
		default:
			return unknown(op)
		}
	case 0x9:
		if op.n() != 0x0 {
			return unknown(op)
		}
		skipIfXNotEqualsY(p, op.x(), op.y())
	case 0xA:
		setIToNNN(p, op.nnn())
	case 0xB:
		jumpWithOffset(p, op.nnn())
	case 0xC:
		setXToRandom(p, op.x(), op.kk())
	case 0xD:
		drawSprite(p, screen, op.x(), op.y(), op.n())
	case 0xE:
		switch op.kk() {
		case 0x9E:
			skipIfKeyDown(p, keys, op.x())
		case 0xA1:
			skipIfKeyUp(p, keys, op.x())
		default:
			return unknown(op)
		}
	case 0xF:
		switch op.kk() {
		case 0x07:
			setXToDelay(p, op.x())
		case 0x0A:
			waitForKey(p, keys, op.x())
		case 0x15:
			setDelayToX(p, op.x())
		case 0x18:
			setSoundToX(p, op.x())
		case 0x1E:
			addXToI(p, op.x())
		case 0x29:
			setIToGlyph(p, op.x())
		case 0x33:
			binaryCodedDecimal(p, op.x())
		case 0x55:
			storeRegisters(p, op.x())
		case 0x65:
			loadRegisters(p, op.x())
		default:
			return unknown(op)
		}
	}
	return nil
}

// read copies len(data) bytes starting at loc, wrapping at the end of memory.
func (p *Processor) read(loc uint16, data []byte) {
	for n := range data {
		data[n] = p.memory[(loc+uint16(n))&addressMask]
	}
}

func (p *Processor) write(loc uint16, data []byte) {
	for n, b := range data {
		p.memory[(loc+uint16(n))&addressMask] = b
	}
}

// OpcodeAt returns the big-endian instruction word at addr.
func (p *Processor) OpcodeAt(addr uint16) Opcode {
	high := uint16(p.memory[addr&addressMask])
	low := uint16(p.memory[(addr+1)&addressMask])
	return Opcode(high<<8 | low)
}

// Memory returns the byte at addr, wrapped to the address space.
func (p *Processor) Memory(addr uint16) byte {
	return p.memory[addr&addressMask]
}

func (p *Processor) Register(x uint8) uint8 {
	return p.v[x&0xF]
}

func (p *Processor) ProgramCounter() uint16 {
	return p.pc
}

func (p *Processor) Index() uint16 {
	return p.i
}

func (p *Processor) StackDepth() int {
	return int(p.sp)
}

func (p *Processor) DelayTimer() uint8 {
	return p.delay
}

func (p *Processor) SoundTimer() uint8 {
	return p.sound
}

// SoundActive reports whether the sound timer is running. Hosts use it as
// the signal to beep.
func (p *Processor) SoundActive() bool {
	return p.sound > 0
}
