package mailparse

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// Snippet truncation bounds: bodies longer than snippetMaxLength are cut to
// snippetTruncateAt and suffixed with "...".
const (
	snippetMaxLength  = 250
	snippetTruncateAt = 247
)

// <hr> separators are only inserted past this many lines, to avoid false
// positives on headers at the very start of a message.
const separatorMinLine = 3

var (
	replyHeaderPattern = regexp.MustCompile(`(?i)^\s*(&gt;\s*)*(From|Sent|To|Subject|Date|Original Message|Forwarded message):`)

	dashSeparatorPattern = regexp.MustCompile(`^\s*(-{5,}|_{5,})\s*$`)
)

// RenderSnippet produces the truncated plain-text preview of a body. The
// second return reports whether the content is HTML (always false here).
func RenderSnippet(plainBody string) (string, bool) {
	text := normalizePlainText(StripBanners(plainBody))
	text = multiBreakPattern.ReplaceAllString(text, "\n\n")

	if runes := []rune(text); len(runes) > snippetMaxLength {
		text = string(runes[:snippetTruncateAt]) + "..."
	}
	return strings.TrimLeftFunc(text, unicode.IsSpace), false
}

// RenderPlain produces the full plain-text rendering of a body with
// reconstructed paragraph breaks.
func RenderPlain(plainBody string) (string, bool) {
	text := normalizePlainText(StripBanners(plainBody))
	lines := reconstructLines(strings.Split(text, "\n"))

	body := strings.TrimSpace(strings.Join(lines, "\n"))
	body = multiBreakPattern.ReplaceAllString(body, "\n\n")
	return body, false
}

// RenderFull produces the HTML rendering of a body. A native HTML body is
// used as-is after banner stripping; otherwise the plain body is sanitized
// and converted. The second return is always true.
func RenderFull(htmlBody, plainBody string) (string, bool) {
	if htmlBody != "" {
		return StripBanners(htmlBody), true
	}

	cleaned := StripAngleBracketLinks(StripBanners(plainBody))
	return formatPlainTextAsHTML(cleaned), true
}

// formatPlainTextAsHTML safely converts plain text to HTML: normalize,
// reconstruct paragraphs, escape, insert reply separators, join with line
// breaks and wrap quoted blocks.
func formatPlainTextAsHTML(text string) string {
	if text == "" {
		return ""
	}

	text = normalizePlainText(text)
	lines := reconstructLines(strings.Split(text, "\n"))

	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = html.EscapeString(line)
	}

	withSeparators := insertReplySeparators(escaped)
	joined := buildParagraphs(withSeparators)
	return wrapQuotedBlocks(joined)
}

// insertReplySeparators places an <hr> before detected reply headers and
// dash/underscore separator lines, but only past the first few lines and only
// after a paragraph break.
func insertReplySeparators(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > separatorMinLine-1 &&
			(replyHeaderPattern.MatchString(line) || dashSeparatorPattern.MatchString(line)) &&
			len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			out = append(out, "<hr>")
		}
		out = append(out, line)
	}
	return out
}

// buildParagraphs groups lines into paragraphs at "" markers, joining lines
// with <br> and paragraphs with <br><br>.
func buildParagraphs(lines []string) string {
	var paragraphs []string
	var current []string

	for _, line := range lines {
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, "<br>"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, "<br>"))
	}

	return strings.Join(paragraphs, "<br><br>")
}
