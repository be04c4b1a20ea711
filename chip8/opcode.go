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

// Opcode is a single 16bit instruction word.
type Opcode uint16

// First nibble of the opcode is the operation kind.
func (op Opcode) kind() uint8 {
	return uint8((op & 0xF000) >> 12)
}

// Second nibble of the opcode is the X register location.
func (op Opcode) x() uint8 {
	return uint8((op & 0x0F00) >> 8)
}

// Third nibble of the opcode is the Y register location.
func (op Opcode) y() uint8 {
	return uint8((op & 0x00F0) >> 4)
}

// Fourth nibble of the opcode is the N value.
func (op Opcode) n() uint8 {
	return uint8(op & 0x000F)
}

// Third and fourth nibbles of the opcode combine into the KK value.
func (op Opcode) kk() uint8 {
	return uint8(op & 0x00FF)
}

// Second, third, and fourth nibbles of the opcode combine into the NNN value.
func (op Opcode) nnn() uint16 {
	return uint16(op & 0x0FFF)
}

func clearScreen(screen Screen) {
	screen.Clear()
}

func callSubroutine(p *Processor, nnn uint16) error {
	if int(p.sp) >= len(p.stack) {
		return ErrStackOverflow
	}
	p.stack[p.sp] = p.pc
	p.sp++
	p.pc = nnn
	return nil
}

func returnFromSubroutine(p *Processor) error {
	if p.sp == 0 {
		return ErrStackUnderflow
	}
	p.sp--
	p.pc = p.stack[p.sp]
	return nil
}

func jumpToLocation(p *Processor, nnn uint16) {
	p.pc = nnn
}

// The sum is not masked; an address past the end of memory faults on the
// next fetch.
func jumpWithOffset(p *Processor, nnn uint16) {
	p.pc = nnn + uint16(p.v[0x0])
}

func skipIfXEqualsKK(p *Processor, x, kk uint8) {
	if p.v[x] == kk {
		p.pc += 2
	}
}

func skipIfXNotEqualsKK(p *Processor, x, kk uint8) {
	if p.v[x] != kk {
		p.pc += 2
	}
}

func skipIfXEqualsY(p *Processor, x, y uint8) {
	if p.v[x] == p.v[y] {
		p.pc += 2
	}
}

func skipIfXNotEqualsY(p *Processor, x, y uint8) {
	if p.v[x] != p.v[y] {
		p.pc += 2
	}
}

func setXToKK(p *Processor, x, kk uint8) {
	p.v[x] = kk
}

func addKKToX(p *Processor, x, kk uint8) {
	p.v[x] += kk
}

func setXToY(p *Processor, x, y uint8) {
	p.v[x] = p.v[y]
}

func orXY(p *Processor, x, y uint8) {
	p.v[x] |= p.v[y]
}

func andXY(p *Processor, x, y uint8) {
	p.v[x] &= p.v[y]
}

func xorXY(p *Processor, x, y uint8) {
	p.v[x] ^= p.v[y]
}

// The flag is always written after the result so that it survives when X is
// the flag register itself.

func addXY(p *Processor, x, y uint8) {
	sum := uint16(p.v[x]) + uint16(p.v[y])
	p.v[x] = byte(sum)
	p.v[FlagRegister] = flag(sum > 0xFF)
}

func subtractYFromX(p *Processor, x, y uint8) {
	notBorrow := p.v[x] >= p.v[y]
	p.v[x] -= p.v[y]
	p.v[FlagRegister] = flag(notBorrow)
}

func subtractXFromY(p *Processor, x, y uint8) {
	notBorrow := p.v[y] >= p.v[x]
	p.v[x] = p.v[y] - p.v[x]
	p.v[FlagRegister] = flag(notBorrow)
}

func shiftRightX(p *Processor, x uint8) {
	out := p.v[x] & 0x1
	p.v[x] >>= 1
	p.v[FlagRegister] = out
}

func shiftLeftX(p *Processor, x uint8) {
	out := (p.v[x] & 0x80) >> 7
	p.v[x] <<= 1
	p.v[FlagRegister] = out
}

func setIToNNN(p *Processor, nnn uint16) {
	p.i = nnn
}

func setXToRandom(p *Processor, x, kk uint8) {
	p.v[x] = p.rand.Byte() & kk
}

func drawSprite(p *Processor, screen Screen, x, y, n uint8) {
	sprite := make([]byte, n)
	p.read(p.i, sprite)

	collision := screen.DrawSprite(p.v[x], p.v[y], sprite)
	p.v[FlagRegister] = flag(collision)
}

func skipIfKeyDown(p *Processor, keys Keys, x uint8) {
	if keys.IsPressed(p.v[x] & 0x0F) {
		p.pc += 2
	}
}

func skipIfKeyUp(p *Processor, keys Keys, x uint8) {
	if !keys.IsPressed(p.v[x] & 0x0F) {
		p.pc += 2
	}
}

func setXToDelay(p *Processor, x uint8) {
	p.v[x] = p.delay
}

// waitForKey does not block. While no key is down the program counter is
// moved back so the same instruction is fetched again on the next step.
func waitForKey(p *Processor, keys Keys, x uint8) {
	key, ok := keys.FirstPressed()
	if !ok {
		p.pc -= 2
		return
	}
	p.v[x] = key
}

func setDelayToX(p *Processor, x uint8) {
	p.delay = p.v[x]
}

func setSoundToX(p *Processor, x uint8) {
	p.sound = p.v[x]
}

// On overflow the index is reduced by 0xFFF, not 0x1000.
func addXToI(p *Processor, x uint8) {
	p.i += uint16(p.v[x])
	if p.i > addressMask {
		p.v[FlagRegister] = 1
		p.i -= addressMask
	} else {
		p.v[FlagRegister] = 0
	}
}

func setIToGlyph(p *Processor, x uint8) {
	p.i = FontStartAddress + uint16(p.v[x])*glyphSize
}

func binaryCodedDecimal(p *Processor, x uint8) {
	val := p.v[x]
	p.write(p.i, []byte{
		val / 100,       // Hundreds
		(val / 10) % 10, // Tens
		val % 10,        // Ones
	})
}

func storeRegisters(p *Processor, x uint8) {
	p.write(p.i, p.v[:int(x)+1])
}

func loadRegisters(p *Processor, x uint8) {
	p.read(p.i, p.v[:int(x)+1])
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
