package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// referencePrefix namespaces booking references issued by this service.
const referencePrefix = "ES"

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBookingReference returns a booking reference of the form
// ES-<base36 millisecond timestamp>-<5 random base36 chars>, upper-cased.
// The timestamp component keeps references roughly sortable by creation
// time; the random suffix makes same-millisecond collisions unlikely.
// Global uniqueness is not guaranteed here — it is enforced by the unique
// index on bookings.booking_reference, and callers regenerate on collision.
func NewBookingReference() (string, error) {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix, err := randomBase36(5)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(referencePrefix + "-" + ts + "-" + suffix), nil
}

// randomBase36 returns n characters drawn uniformly from the base36
// alphabet using the crypto random source.
func randomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36Alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = base36Alphabet[idx.Int64()]
	}
	return string(b), nil
}
