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

package chip8

import (
	"fmt"

	"github.com/pkg/errors"
)

// Runtime faults returned by Step. None of them are recovered from. Once an
// instruction has been fetched the program counter has already moved past it;
// nothing else changes and the timers are not decremented.
var (
	ErrUnsupportedFeature       = errors.New("machine code routines are not supported")
	ErrStackOverflow            = errors.New("stack overflow")
	ErrStackUnderflow           = errors.New("stack underflow")
	ErrProgramCounterOutOfRange = errors.New("program counter out of range")
)

// UnknownOpcodeError reports an instruction word that does not decode to any
// operation.
type UnknownOpcodeError struct {
	Opcode Opcode
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X", uint16(e.Opcode))
}

// RomLoadError is returned by New when the program source cannot be read.
type RomLoadError struct {
	Read int // bytes copied into memory before the failure
	Err  error
}

func (e *RomLoadError) Error() string {
	return fmt.Sprintf("rom load failed after %d bytes: %v", e.Read, e.Err)
}

func (e *RomLoadError) Unwrap() error {
	return e.Err
}

func unknown(op Opcode) error {
	return &UnknownOpcodeError{Opcode: op}
}

func unsupported(op Opcode) error {
	return errors.Wrapf(ErrUnsupportedFeature, "opcode 0x%04X", uint16(op))
}
