package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxFileNameLength bounds stored file names; the extension is kept when trimming.
const MaxFileNameLength = 120

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName removes path separators and control characters and
// rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
	if s == "" {
		return "", ErrInvalidFileName
	}
	if runes := []rune(s); len(runes) > MaxFileNameLength {
		ext := []rune(filepath.Ext(s))
		if len(ext) >= MaxFileNameLength {
			ext = nil
		}
		s = string(runes[:MaxFileNameLength-len(ext)]) + string(ext)
	}
	return s, nil
}
