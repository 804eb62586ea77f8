package verifycode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// New returns a uniformly distributed 4-digit verification code,
// zero-padded ("0000".."9999"). The code is short-lived, attempt-limited
// and delivered by email, so it is not a security boundary on its own.
func New() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// nothing sensible to do at this level.
		panic("verifycode: " + err.Error())
	}
	return fmt.Sprintf("%04d", n.Int64())
}
