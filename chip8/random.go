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
	"math/rand/v2"
)

// RandomSource produces the bytes consumed by the Cxkk instruction.
type RandomSource interface {
	Byte() uint8
}

// RandomFunc adapts an ordinary function to RandomSource.
type RandomFunc func() uint8

func (f RandomFunc) Byte() uint8 {
	return f()
}

type mathRandom struct {
	r *rand.Rand
}

func (m mathRandom) Byte() uint8 {
	if m.r == nil {
		return uint8(rand.Uint32N(256))
	}
	return uint8(m.r.Uint32N(256))
}

// NewRandom returns a source backed by the unseeded global generator.
func NewRandom() RandomSource {
	return mathRandom{}
}

// NewSeededRandom returns a deterministic source. Two sources created with
// the same seed produce the same sequence.
func NewSeededRandom(seed uint64) RandomSource {
	return mathRandom{r: rand.New(rand.NewPCG(seed, seed))}
}
