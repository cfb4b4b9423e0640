package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe
// alternatives. Spaces become dashes so generated names stay shell-friendly.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	" ", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, asterisks, and spaces become dashes; other
// unsafe characters are removed.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.Trim(fileNameReplacer.Replace(name), "-")
}
