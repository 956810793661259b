package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	// CodeLength is the number of digits in a code.
	CodeLength = 6

	minCode = 100000
	maxCode = 999999
)

var codeSpan = big.NewInt(maxCode - minCode + 1)

// GenerateCode returns a code drawn uniformly from [100000, 999999] using
// crypto/rand.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		// crypto/rand does not fail on supported platforms.
		panic("otp: read random: " + err.Error())
	}
	return strconv.FormatInt(n.Int64()+minCode, 10)
}

// IsWellFormed reports whether code could have been produced by GenerateCode.
func IsWellFormed(code string) bool {
	if len(code) != CodeLength || code[0] == '0' {
		return false
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
