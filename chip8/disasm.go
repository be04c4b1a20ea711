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

import "fmt"

// String returns the assembly mnemonic for the instruction, for example
// "LD V1, $0A" or "DRW V0, V1, $5". Words that do not decode are rendered as
// a data directive.
func (op Opcode) String() string {
	x, y := op.x(), op.y()

	switch op.kind() {
	case 0x0:
		switch uint16(op) {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
		return fmt.Sprintf("SYS $%03X", op.nnn())
	case 0x1:
		return fmt.Sprintf("JP $%03X", op.nnn())
	case 0x2:
		return fmt.Sprintf("CALL $%03X", op.nnn())
	case 0x3:
		return fmt.Sprintf("SE V%X, $%02X", x, op.kk())
	case 0x4:
		return fmt.Sprintf("SNE V%X, $%02X", x, op.kk())
	case 0x5:
		if op.n() == 0x0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, $%02X", x, op.kk())
	case 0x7:
		return fmt.Sprintf("ADD V%X, $%02X", x, op.kk())
	case 0x8:
		if name, ok := aluNames[op.n()]; ok {
			if op.n() == 0x6 || op.n() == 0xE {
				return fmt.Sprintf("%s V%X", name, x)
			}
			return fmt.Sprintf("%s V%X, V%X", name, x, y)
		}
	case 0x9:
		if op.n() == 0x0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, $%03X", op.nnn())
	case 0xB:
		return fmt.Sprintf("JP V0, $%03X", op.nnn())
	case 0xC:
		return fmt.Sprintf("RND V%X, $%02X", x, op.kk())
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, $%X", x, y, op.n())
	case 0xE:
		switch op.kk() {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF:
		if format, ok := miscFormats[op.kk()]; ok {
			return fmt.Sprintf(format, x)
		}
	}

	return fmt.Sprintf("DW $%04X", uint16(op))
}

var aluNames = map[uint8]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscFormats = map[uint8]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}
