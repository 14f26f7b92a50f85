// Package message provides the chat Message domain entity.
package message

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// MaxBodyLength is the longest accepted message body in runes.
const MaxBodyLength = 500

var ErrInvalidBody = errors.New("invalid message body")

// Message represents a single chat message.
type Message struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Nickname  string    `db:"nickname" json:"nickname"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ValidateBody checks that a message body is non-blank and within limits.
func ValidateBody(body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return errors.Wrap(ErrInvalidBody, "blank")
	}
	if len([]rune(body)) > MaxBodyLength {
		return errors.Wrapf(ErrInvalidBody, "longer than %d characters", MaxBodyLength)
	}
	return nil
}
