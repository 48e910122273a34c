package textnorm

import "strings"

// Bullet glyphs that PDF extraction commonly leaves behind, including the
// UTF-8 bullet decoded as Windows-1252.
var bulletReplacer = strings.NewReplacer(
	"â€¢", "-",
	"•", "-",
	"▪", "-",
	"●", "-",
	"◦", "-",
	"\uf0b7", "-",
)

// CleanForATS rewrites text into a plain form ATS parsers read reliably:
// bullets become dashes, each line is trimmed and blank lines are dropped.
func CleanForATS(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = bulletReplacer.Replace(text)
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}
