// Package generator synthesizes random passwords from configurable
// character pools.
package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// Character pools.
const (
	charsetLowercase = "abcdefghijklmnopqrstuvwxyz"
	charsetUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsetDigits    = "0123456789"
	charsetSymbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// DefaultLength is used when Options.Length is zero.
	DefaultLength = 16
)

// Options configures password generation. Use Default for the standard
// configuration; the zero value disables every pool, which falls back to
// lowercase plus digits rather than an empty alphabet.
type Options struct {
	Length           int
	IncludeUppercase bool
	IncludeLowercase bool
	IncludeNumbers   bool
	IncludeSymbols   bool

	// Rand is the source of random bytes. Nil means crypto/rand.Reader.
	Rand io.Reader
}

// Default returns Options with every pool enabled and the default length.
func Default() Options {
	return Options{
		Length:           DefaultLength,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}

// Generate produces a random password per opts. Each output position draws
// one random byte and indexes the alphabet with byte mod alphabet length.
// The modulo bias is at most 256 mod len(alphabet) parts in 256 per
// character, which is accepted for this generator.
func Generate(opts Options) (string, error) {
	length := opts.Length
	if length <= 0 {
		length = DefaultLength
	}

	alphabet := buildAlphabet(opts)

	source := opts.Rand
	if source == nil {
		source = rand.Reader
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(source, buf); err != nil {
		return "", fmt.Errorf("generator: failed to read random bytes: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out), nil
}

// buildAlphabet assembles the combined pool in a fixed order so that equal
// options always yield the same alphabet.
func buildAlphabet(opts Options) string {
	var b strings.Builder
	if opts.IncludeLowercase {
		b.WriteString(charsetLowercase)
	}
	if opts.IncludeUppercase {
		b.WriteString(charsetUppercase)
	}
	if opts.IncludeNumbers {
		b.WriteString(charsetDigits)
	}
	if opts.IncludeSymbols {
		b.WriteString(charsetSymbols)
	}

	// Never generate from an empty alphabet.
	if b.Len() == 0 {
		return charsetLowercase + charsetDigits
	}
	return b.String()
}
