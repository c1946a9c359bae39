package utils

import (
	"crypto/rand"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferenceLength is the size of a booking reference code.
const ReferenceLength = 8

// RandomReference returns an 8-character uppercase alphanumeric code.
// Uniqueness against existing bookings is the caller's responsibility.
func RandomReference() string {
	buf := make([]byte, ReferenceLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return string(buf)
}
