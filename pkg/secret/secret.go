// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package secret generates random credential values that are safe to paste
// into shell arguments and dotenv files.
package secret

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔤 Character classes used to build the safe alphabet
const (
	LowerChars = "abcdefghijklmnopqrstuvwxyz"
	UpperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars = "0123456789"

	// DefaultSymbols excludes '#' and '=' since both are structural in dotenv files
	DefaultSymbols = "!@%^*_+-"

	DefaultLength = 24
	MinLength     = 4

	// MaxAttempts bounds the redraw loop when a draw misses a character class
	MaxAttempts = 1000
)

// SafeSymbols are the only symbols allowed in an alphabet. Quotes, backslash,
// whitespace, '#', '=', '$' and shell metacharacters such as ;|&<>() are left out.
const SafeSymbols = "!@%^*_+-.,:~"

var (
	ErrInvalidLength         = errors.Base("secret length too short")
	ErrUnsafeAlphabet        = errors.Base("alphabet contains unsafe characters")
	ErrUnsatisfiableAlphabet = errors.Base("alphabet cannot satisfy all character classes")
	ErrAttemptsExhausted     = errors.Base("no draw satisfied all character classes")
)

// 🎲 Generator draws secrets of a fixed length from a fixed alphabet
type Generator struct {
	Length   int
	Alphabet string
	Symbols  string

	// Random is the entropy source, crypto/rand.Reader when nil
	Random io.Reader
}

// 🏭 New creates a generator over lowercase, uppercase, digits and the given symbols
func New(length int, symbols string) (*Generator, error) {
	if symbols == "" {
		symbols = DefaultSymbols
	}
	g := &Generator{
		Length:   length,
		Alphabet: LowerChars + UpperChars + DigitChars + symbols,
		Symbols:  symbols,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// 🏭 Default returns the 24 character generator
func Default() *Generator {
	g, err := New(DefaultLength, DefaultSymbols)
	if err != nil {
		panic(err)
	}
	return g
}

// 🔍 Validate checks that every draw can contain all four character classes
func (g *Generator) Validate() error {
	if g.Length < MinLength {
		return errors.Errorf("%w: %d < %d", ErrInvalidLength, g.Length, MinLength)
	}
	if c, ok := firstOutside(g.Alphabet, LowerChars+UpperChars+DigitChars+SafeSymbols); ok {
		return errors.Errorf("%w: %q", ErrUnsafeAlphabet, c)
	}
	if strings.ContainsAny(g.Symbols, LowerChars+UpperChars+DigitChars) {
		return errors.Errorf("%w: symbols must not contain letters or digits", ErrUnsatisfiableAlphabet)
	}
	if c, ok := firstOutside(g.Symbols, SafeSymbols); ok {
		return errors.Errorf("%w: %q", ErrUnsafeAlphabet, c)
	}

	classes := map[string]string{
		"lowercase": LowerChars,
		"uppercase": UpperChars,
		"digit":     DigitChars,
		"symbol":    g.Symbols,
	}
	for name, chars := range classes {
		if chars == "" || !strings.ContainsAny(g.Alphabet, chars) {
			return errors.Errorf("%w: no %s characters", ErrUnsatisfiableAlphabet, name)
		}
	}
	return nil
}

// 🎲 Generate returns a new secret containing every character class
func (g *Generator) Generate() (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}

	for range MaxAttempts {
		candidate, err := g.draw()
		if err != nil {
			return "", err
		}
		if g.satisfies(candidate) {
			return candidate, nil
		}
	}

	return "", errors.Errorf("%w after %d attempts", ErrAttemptsExhausted, MaxAttempts)
}

// draw picks Length characters uniformly from the alphabet
func (g *Generator) draw() (string, error) {
	src := g.Random
	if src == nil {
		src = rand.Reader
	}

	alphabet := []rune(g.Alphabet)
	size := big.NewInt(int64(len(alphabet)))

	var sb strings.Builder
	sb.Grow(g.Length)
	for range g.Length {
		n, err := rand.Int(src, size)
		if err != nil {
			return "", errors.Errorf("reading random source: %w", err)
		}
		sb.WriteRune(alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// firstOutside returns the first rune of s that is not in allowed
func firstOutside(s, allowed string) (rune, bool) {
	for _, c := range s {
		if !strings.ContainsRune(allowed, c) {
			return c, true
		}
	}
	return 0, false
}

func (g *Generator) satisfies(s string) bool {
	return strings.ContainsAny(s, LowerChars) &&
		strings.ContainsAny(s, UpperChars) &&
		strings.ContainsAny(s, DigitChars) &&
		strings.ContainsAny(s, g.Symbols)
}
