// Package entities contains the persistent domain records of the catalog.
//
// Entities are plain records: identity, UTC timestamps and entity fields.
// Business rules around them (uniqueness, ownership, policy checks) live in
// the service layer, which pre-validates before anything reaches storage.
package entities

import "time"

// User is a registered account. Username and email are globally unique.
// Password always holds the argon2id hash, never the plaintext.
type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Email     string
	Password  string
}

// PasswordHistory keeps superseded password hashes of a user. A user may
// never change their password back to any entry recorded here.
type PasswordHistory struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
	Password  string
}
