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

const KeyCount int = 16

// Keypad is the state of the sixteen hexadecimal keys. Key indices outside
// 0x0-0xF cause a panic.
type Keypad struct {
	keys [KeyCount]bool
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

func (k *Keypad) Press(key uint8) {
	k.keys[key] = true
}

func (k *Keypad) Release(key uint8) {
	k.keys[key] = false
}

func (k *Keypad) IsPressed(key uint8) bool {
	return k.keys[key]
}

// FirstPressed returns the lowest numbered key that is down.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.keys = [KeyCount]bool{}
}
