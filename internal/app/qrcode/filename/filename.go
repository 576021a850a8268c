// Package filename maps QR source URLs to file names and back.
//
// The encoding is unpadded URL-safe base64, so a name only ever contains
// [A-Za-z0-9_-] plus the extension and cannot address anything outside the
// image directory.
package filename

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
)

const (
	Ext = ".png"

	// most filesystems cap a single path element at 255 bytes
	maxNameLen = 255

	// MaxURLLen is the longest URL whose encoded name still fits maxNameLen.
	MaxURLLen = (maxNameLen - len(Ext)) * 3 / 4
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.png$`)

func Encode(url string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(url))
}

// Decode reverses Encode. The .png extension is optional.
func Decode(name string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(name, Ext))
	if err != nil {
		return "", customErrors.NewInvalidArgument("not an encoded file name")
	}
	return string(raw), nil
}

// FromURL returns the image file name for url.
func FromURL(url string) (string, error) {
	if url == "" {
		return "", customErrors.NewInvalidArgument("empty url")
	}
	name := Encode(url) + Ext
	if len(name) > maxNameLen {
		return "", customErrors.NewInvalidArgument(fmt.Sprintf("url longer than %d bytes", MaxURLLen))
	}
	return name, nil
}

// Valid reports whether name could have been produced by FromURL.
func Valid(name string) bool {
	if len(name) > maxNameLen || !namePattern.MatchString(name) {
		return false
	}
	_, err := Decode(name)
	return err == nil
}
