package domain

import "time"

// PendingRegistration is a registration attempt held in memory until the
// email verification code is confirmed. It is owned exclusively by the
// pending-registration store and never persisted: a process restart discards
// all holds, which only forces affected users to register again.
//
// The password is bcrypt-hashed at intake; the plaintext never lives in the
// hold.
type PendingRegistration struct {
	Email        string // normalized lowercase, the store key
	FirstName    string
	LastName     string
	PasswordHash string
	Phone        *string
	Role         string // RoleUser | RoleAgency, derived once at creation
	Code         string // 4-digit verification code
	Attempts     int    // wrong-code count, 0..3
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// Expired reports whether the hold has passed its verification window.
// An expired entry is logically dead even before the sweep removes it.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
