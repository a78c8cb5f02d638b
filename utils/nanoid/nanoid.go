package nanoid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Lowercase letters
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	// Lowercase and uppercase letters
	lowerUpper = lowercase + "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Digits plus lowercase and uppercase letters
	numLowerUpper = "0123456789" + lowerUpper

	defaultSize    = 16
	primaryKeySize = 22
)

func getSize(l ...int) int {
	size := defaultSize
	if len(l) > 0 && l[0] > 0 {
		size = l[0]
	}
	return size
}

// Must generates a nanoid of optional length using the default alphabet.
func Must(l ...int) string {
	return gonanoid.Must(getSize(l...))
}

// String generates an alphabetic nanoid of optional length.
func String(l ...int) string {
	return gonanoid.MustGenerate(lowerUpper, getSize(l...))
}

// Lower generates a lowercase nanoid of optional length.
func Lower(l ...int) string {
	return gonanoid.MustGenerate(lowercase, getSize(l...))
}

// PrimaryKey returns a generator for URL-safe primary keys.
func PrimaryKey(l ...int) func() string {
	size := primaryKeySize
	if len(l) > 0 && l[0] > 0 {
		size = l[0]
	}
	return func() string {
		return gonanoid.MustGenerate(numLowerUpper, size)
	}
}
