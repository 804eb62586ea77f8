package registration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	live := now.Add(10 * time.Minute)
	past := now.Add(-1 * time.Minute)

	tests := []struct {
		name      string
		stored    string
		submitted string
		attempts  int
		expiresAt time.Time
		want      outcome
	}{
		{"match", "1234", "1234", 0, live, outcomeMatch},
		{"match with prior failures", "1234", "1234", 2, live, outcomeMatch},
		{"first mismatch", "1234", "0000", 0, live, outcomeMismatch},
		{"second mismatch", "1234", "0000", 1, live, outcomeMismatch},
		{"third mismatch exhausts", "1234", "0000", 2, live, outcomeExhausted},
		{"expired beats correct code", "1234", "1234", 0, past, outcomeExpired},
		{"expired beats mismatch", "1234", "0000", 2, past, outcomeExpired},
		{"boundary instant is still live", "1234", "1234", 0, now, outcomeMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluate(tt.stored, tt.submitted, tt.attempts, tt.expiresAt, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
