package validators

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Exclusive size bounds for uploads, in bytes.
const (
	MinUploadSize = 2
	MaxUploadSize = 1000
)

var allowedExtensions = map[string]struct{}{
	"png": {},
	"jpg": {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// ValidateUpload checks an uploaded file and returns the name to store it under.
func ValidateUpload(blob []byte, filename string) (string, error) {
	size := len(blob)
	if size <= MinUploadSize {
		return "", clientErr("Файл слишком маленький")
	}
	if size >= MaxUploadSize {
		return "", clientErr("Файл слишком большой")
	}
	if filename == "" {
		return "", clientErr("Файл не выбран")
	}
	if !AllowedFile(filename) {
		return "", clientErr("Файл имеет некорректное расширение!")
	}
	safe := SanitizeFilename(filename)
	if safe == "" {
		return "", clientErr("Файл не выбран")
	}
	return safe, nil
}

// AllowedFile reports whether the extension after the last dot is allowed.
func AllowedFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

// SanitizeFilename reduces filename to a flat ASCII name safe to join with a directory.
// "../../etc/passwd" becomes "etc_passwd"; "My cat.png" becomes "My_cat.png".
func SanitizeFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, decomposed)

	joined := strings.Join(strings.Fields(ascii), "_")
	cleaned := unsafeFilenameChars.ReplaceAllString(joined, "")
	return strings.Trim(cleaned, "._")
}
