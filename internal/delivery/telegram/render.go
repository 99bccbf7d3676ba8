package telegram

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	headingRe = regexp.MustCompile(`^#{1,6}\s+(.*)$`)
	bulletRe  = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	boldRe    = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	italicRe  = regexp.MustCompile(`\*([^*\n]+?)\*`)
	codeRe    = regexp.MustCompile("`([^`\n]+)`")
)

// renderMarkdown converts the subset of markdown used by the topic content
// (headings, bullets, bold, italics, inline code) into Telegram HTML.
// Everything else is escaped and passed through.
func renderMarkdown(src string) string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")

		switch {
		case headingRe.MatchString(line):
			text := headingRe.FindStringSubmatch(line)[1]
			out = append(out, "<b>"+renderInline(strings.Trim(text, "* "))+"</b>")
		case bulletRe.MatchString(line):
			text := bulletRe.FindStringSubmatch(line)[1]
			out = append(out, "• "+renderInline(text))
		default:
			out = append(out, renderInline(line))
		}
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

func renderInline(s string) string {
	s = html.EscapeString(s)
	s = codeRe.ReplaceAllString(s, "<code>$1</code>")
	s = boldRe.ReplaceAllString(s, "<b>$1</b>")
	s = italicRe.ReplaceAllString(s, "<i>$1</i>")
	return s
}

// truncateRunes shortens s to at most n runes, marking the cut with an ellipsis.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:n]), " \n") + "…"
}
