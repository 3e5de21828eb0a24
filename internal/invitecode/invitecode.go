// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package invitecode mints and normalizes organization invite codes.
package invitecode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	Length   = 6
)

var alphabetSize = big.NewInt(int64(len(Alphabet)))

type Generator struct{}

// Generate draws Length symbols uniformly from Alphabet
func (g *Generator) Generate() (string, error) {
	var b strings.Builder
	b.Grow(Length)

	for range Length {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to draw invite code symbol: %w", err)
		}

		b.WriteByte(Alphabet[n.Int64()])
	}

	return b.String(), nil
}

// Normalize trims and uppercases a user supplied code
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code is exactly Length symbols of Alphabet
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}

	for i := 0; i < len(code); i++ {
		if strings.IndexByte(Alphabet, code[i]) < 0 {
			return false
		}
	}

	return true
}

func NewGenerator() *Generator {
	return new(Generator)
}
