// Package user provides the User domain entity.
package user

import (
	"regexp"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidNickname = errors.New("invalid nickname")
	ErrWrongPassword   = errors.New("wrong password")
	ErrNotFound        = errors.New("user not found")
)

// nicknamePattern restricts nicknames to 2-24 word characters or hyphens.
var nicknamePattern = regexp.MustCompile(`^[\w-]{2,24}$`)

// User represents a lounge member.
type User struct {
	ID           int64      `db:"id"`
	Nickname     string     `db:"nickname"`
	PasswordHash string     `db:"password_hash"` // empty when the account has no password
	IsAdmin      bool       `db:"is_admin"`
	CreatedAt    time.Time  `db:"created_at"`
	LastSeenAt   *time.Time `db:"last_seen_at"`
}

// HasPassword reports whether the account is password protected.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ValidateNickname checks that a nickname is acceptable.
func ValidateNickname(nickname string) error {
	if !nicknamePattern.MatchString(nickname) {
		return errors.Wrapf(ErrInvalidNickname, "%q", nickname)
	}
	return nil
}
