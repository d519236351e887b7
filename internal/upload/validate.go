package upload

import (
	"strings"
	"unicode"
)

// AllowedExtensions is the fixed set of permitted file extensions. Matching
// is case-insensitive and inspects only the final extension token, so
// "archive.tar.gz" is judged on "gz".
var AllowedExtensions = []string{
	"txt", "pdf", "png", "jpg", "jpeg", "gif", "doc", "docx",
	"xls", "xlsx", "zip", "rar", "7z", "mp3", "mp4", "avi",
}

var allowedSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllowedExtensions))
	for _, ext := range AllowedExtensions {
		set[ext] = struct{}{}
	}
	return set
}()

// AllowedFile reports whether filename carries a permitted extension.
func AllowedFile(filename string) bool {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	_, ok := allowedSet[strings.ToLower(filename[idx+1:])]
	return ok
}

// AllowedTypesMessage returns the validation message listing every
// permitted extension.
func AllowedTypesMessage() string {
	return "File type not allowed. Allowed types: " + strings.Join(AllowedExtensions, ", ")
}

// SanitizeFilename reduces name to a form safe for use in URLs and storage
// paths: any directory component is dropped, path separators and control
// characters are stripped, whitespace collapses to underscores, and leading
// dots are removed. The result may be empty; callers must treat that as a
// missing filename.
func SanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsControl(r):
		case unicode.IsSpace(r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimLeft(b.String(), ".")
}
