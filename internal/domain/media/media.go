// Package media provides the shared media Item domain entity.
package media

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidKind = errors.New("invalid media kind")
	ErrInvalidURL  = errors.New("invalid media url")
	ErrNotFound    = errors.New("media item not found")
)

// Kind classifies a shared link.
type Kind string

const (
	KindMusic Kind = "music"
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ParseKind parses a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindMusic:
		return KindMusic, nil
	case KindImage:
		return KindImage, nil
	case KindVideo:
		return KindVideo, nil
	default:
		return "", errors.Wrapf(ErrInvalidKind, "%q", s)
	}
}

// Item represents a link shared into the lounge.
type Item struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Nickname  string    `db:"nickname" json:"nickname"`
	Kind      Kind      `db:"kind" json:"kind"`
	URL       string    `db:"url" json:"url"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// extension to kind mapping used when the submitter does not name a kind.
var kindByExt = map[string]Kind{
	".mp3":  KindMusic,
	".ogg":  KindMusic,
	".flac": KindMusic,
	".wav":  KindMusic,
	".m4a":  KindMusic,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".webp": KindImage,
	".mp4":  KindVideo,
	".webm": KindVideo,
	".mov":  KindVideo,
	".mkv":  KindVideo,
}

// DetectKind infers the kind from the URL path extension.
// Links without a recognized extension default to video, which is what
// bare YouTube-style links almost always are.
func DetectKind(rawURL string) Kind {
	u, err := url.Parse(rawURL)
	if err != nil {
		return KindVideo
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if k, ok := kindByExt[ext]; ok {
		return k
	}
	return KindVideo
}

// ValidateURL checks that a shared link is an absolute http(s) URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrap(ErrInvalidURL, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Wrapf(ErrInvalidURL, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.Wrap(ErrInvalidURL, "missing host")
	}
	return nil
}
