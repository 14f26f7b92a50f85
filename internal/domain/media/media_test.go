package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Kind
	}{
		{name: "mp3 is music", url: "https://example.com/song.mp3", want: KindMusic},
		{name: "flac is music", url: "https://example.com/a/b/track.FLAC", want: KindMusic},
		{name: "png is image", url: "https://example.com/cat.png", want: KindImage},
		{name: "jpeg is image", url: "https://example.com/photo.jpeg?size=large", want: KindImage},
		{name: "mp4 is video", url: "https://example.com/clip.mp4", want: KindVideo},
		{name: "no extension defaults to video", url: "https://youtu.be/dQw4w9WgXcQ", want: KindVideo},
		{name: "unknown extension defaults to video", url: "https://example.com/file.xyz", want: KindVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.url))
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"music", "image", "video", "MUSIC", "Video"} {
		_, err := ParseKind(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseKind("podcast")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https link", url: "https://example.com/a.mp3"},
		{name: "http link", url: "http://example.com/"},
		{name: "ftp scheme", url: "ftp://example.com/a", wantErr: true},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: true},
		{name: "relative path", url: "/just/a/path", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
