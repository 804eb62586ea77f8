package registration

import "time"

// maxAttempts is the number of wrong codes a hold survives. The guess that
// becomes the third failure is reported as exhaustion, not as one more
// mismatch.
const maxAttempts = 3

type outcome int

const (
	outcomeMatch outcome = iota
	outcomeMismatch
	outcomeExpired
	outcomeExhausted
)

// evaluate classifies a verification attempt against the stored hold.
// attempts is the number of failures already recorded before this attempt.
// Expiry wins over code correctness: a correct code after the window still
// reports expired.
func evaluate(storedCode, submittedCode string, attempts int, expiresAt, now time.Time) outcome {
	if now.After(expiresAt) {
		return outcomeExpired
	}
	if submittedCode != storedCode {
		if attempts+1 >= maxAttempts {
			return outcomeExhausted
		}
		return outcomeMismatch
	}
	return outcomeMatch
}
