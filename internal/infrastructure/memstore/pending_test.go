package memstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visapath-api/internal/domain"
)

// fakeClock lets tests move the store's wall clock forward.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*PendingStore, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewPendingStore(30*time.Minute, 30*time.Minute, WithClock(clk.now))
	t.Cleanup(s.Stop)
	return s, clk
}

func pending(email, code string) *domain.PendingRegistration {
	return &domain.PendingRegistration{
		Email:        email,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleUser,
		Code:         code,
	}
}

func TestPut_SetsWindowAndResetsAttempts(t *testing.T) {
	s, clk := newTestStore(t)
	s.Put(pending("a@x.com", "1234"))

	p, ok := s.Get("a@x.com")
	require.True(t, ok)
	assert.Equal(t, 0, p.Attempts)
	assert.Equal(t, clk.t.Add(30*time.Minute), p.ExpiresAt)
	assert.Equal(t, "1234", p.Code)
}

func TestPut_Overwrites_OneEntryPerEmail(t *testing.T) {
	s, _ := newTestStore(t)
	s.Put(pending("a@x.com", "1111"))
	s.IncrementAttempts("a@x.com")
	s.Put(pending("a@x.com", "2222"))

	assert.Equal(t, 1, s.Len())
	p, ok := s.Get("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "2222", p.Code)
	assert.Equal(t, 0, p.Attempts)
}

func TestGet_Absent(t *testing.T) {
	s, _ := newTestStore(t)
	_, ok := s.Get("nobody@x.com")
	assert.False(t, ok)
}

func TestGet_ReturnsExpiredEntryForClassification(t *testing.T) {
	s, clk := newTestStore(t)
	s.Put(pending("a@x.com", "1234"))
	clk.advance(31 * time.Minute)

	p, ok := s.Get("a@x.com")
	require.True(t, ok)
	assert.True(t, p.Expired(clk.now()))
}

func TestGet_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.Put(pending("a@x.com", "1234"))

	p, _ := s.Get("a@x.com")
	p.Code = "9999"
	again, _ := s.Get("a@x.com")
	assert.Equal(t, "1234", again.Code)
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	s.Put(pending("a@x.com", "1234"))
	s.Remove("a@x.com")
	_, ok := s.Get("a@x.com")
	assert.False(t, ok)
}

func TestRefreshCode_RotatesAndExtends(t *testing.T) {
	s, clk := newTestStore(t)
	s.Put(pending("a@x.com", "1111"))
	s.IncrementAttempts("a@x.com")
	s.IncrementAttempts("a@x.com")
	clk.advance(10 * time.Minute)

	require.True(t, s.RefreshCode("a@x.com", "2222"))

	p, ok := s.Get("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "2222", p.Code)
	assert.Equal(t, 0, p.Attempts)
	assert.Equal(t, clk.t.Add(30*time.Minute), p.ExpiresAt)
}

func TestRefreshCode_AbsentEntry_NoOp(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.RefreshCode("nobody@x.com", "2222"))
}

func TestRefreshCode_ExpiredEntry_TreatedAsAbsent(t *testing.T) {
	s, clk := newTestStore(t)
	s.Put(pending("a@x.com", "1111"))
	clk.advance(31 * time.Minute)

	assert.False(t, s.RefreshCode("a@x.com", "2222"))
	_, ok := s.Get("a@x.com")
	assert.False(t, ok, "expired entry should be dropped on refresh attempt")
}

func TestIncrementAttempts(t *testing.T) {
	s, _ := newTestStore(t)
	s.Put(pending("a@x.com", "1234"))

	assert.Equal(t, 1, s.IncrementAttempts("a@x.com"))
	assert.Equal(t, 2, s.IncrementAttempts("a@x.com"))
	assert.Equal(t, 3, s.IncrementAttempts("a@x.com"))
}

func TestIncrementAttempts_Absent_ReturnsZero(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, 0, s.IncrementAttempts("nobody@x.com"))
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	s, clk := newTestStore(t)
	s.Put(pending("old@x.com", "1111"))
	clk.advance(20 * time.Minute)
	s.Put(pending("fresh@x.com", "2222"))
	clk.advance(15 * time.Minute) // old is now 35m past, fresh 15m

	s.removeExpired()

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("old@x.com")
	assert.False(t, ok)
	_, ok = s.Get("fresh@x.com")
	assert.True(t, ok)
}

func TestStop_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	s.Stop()
	s.Stop()
}
