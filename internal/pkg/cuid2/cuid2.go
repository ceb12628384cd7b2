// Package cuid2 generates collision-resistant identifiers for request and
// job correlation. IDs combine an optional base62 timestamp prefix with a
// cryptographically random base62 suffix.
package cuid2

import (
	"crypto/rand"
	"strings"
	"time"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// EncodeTimestamp encodes a Unix timestamp in seconds as a 6-character
// base62 string. Output is lexicographically sortable, which keeps
// time-prefixed IDs clustered in B-tree indexes.
func EncodeTimestamp(seconds int64) string {
	n := seconds
	out := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		out[i] = base62Alphabet[n%62]
		n /= 62
	}
	return string(out)
}

// randomBase62 produces length uniformly distributed base62 characters.
// Six bits are drawn at a time and values >= 62 are rejected so every
// character is equally likely.
func randomBase62(length int) string {
	buf := make([]byte, (length*6)/8+4)
	if _, err := rand.Read(buf); err != nil {
		panic("cuid2: failed to read random bytes: " + err.Error())
	}

	var sb strings.Builder
	bitBuffer := uint64(0)
	bits := uint(0)
	idx := 0

	for sb.Len() < length {
		for bits < 6 && idx < len(buf) {
			bitBuffer = (bitBuffer << 8) | uint64(buf[idx])
			bits += 8
			idx++
		}

		value := (bitBuffer >> (bits - 6)) & 0x3f
		bits -= 6
		if value < 62 {
			sb.WriteByte(base62Alphabet[value])
		}

		if idx >= len(buf) && sb.Len() < length {
			if _, err := rand.Read(buf); err != nil {
				panic("cuid2: failed to read random bytes: " + err.Error())
			}
			idx = 0
			bitBuffer = 0
			bits = 0
		}
	}

	return sb.String()
}

// PrefixedIdOptions controls GeneratePrefixedId.
type PrefixedIdOptions struct {
	// TimeSortable adds a 6-char base62 timestamp before the random part.
	TimeSortable bool
	// RandomLength overrides the random portion length. Defaults to 18
	// when time-sortable, 24 otherwise.
	RandomLength int
}

// GeneratePrefixedId returns an ID of the form "<prefix>_<timestamp?><random>".
//
//	GeneratePrefixedId("req", PrefixedIdOptions{TimeSortable: true})
//	  => "req_1rK5iq0CL2KwaB3cD5eF7gH9"
func GeneratePrefixedId(prefix string, options PrefixedIdOptions) string {
	randomLength := options.RandomLength

	if options.TimeSortable {
		if randomLength == 0 {
			randomLength = 18
		}
		return prefix + "_" + EncodeTimestamp(time.Now().Unix()) + randomBase62(randomLength)
	}

	if randomLength == 0 {
		randomLength = 24
	}
	return prefix + "_" + randomBase62(randomLength)
}
