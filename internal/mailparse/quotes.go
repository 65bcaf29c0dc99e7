package mailparse

import "strings"

// Escaped quote markers as they appear after HTML escaping.
const (
	quoteMarker       = "&gt;"
	quoteMarkerSpaced = "&gt; "
)

// wrapQuotedBlocks finds maximal runs of consecutive quoted lines in
// <br>-joined escaped content, strips one layer of quote marker from each
// line and wraps the run in a styled container. A single unquoted line
// (including an empty one) breaks a run.
func wrapQuotedBlocks(html string) string {
	if !strings.Contains(html, quoteMarker) {
		return html
	}

	lines := strings.Split(html, "<br>")
	out := make([]string, 0, len(lines))
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], quoteMarker) {
			out = append(out, lines[i])
			i++
			continue
		}

		var quoted []string
		for i < len(lines) && strings.HasPrefix(lines[i], quoteMarker) {
			quoted = append(quoted, stripQuoteMarker(lines[i]))
			i++
		}
		out = append(out, `<div class="email-quote">`+strings.Join(quoted, "<br>")+`</div>`)
	}
	return strings.Join(out, "<br>")
}

// stripQuoteMarker removes exactly one layer of quote marker so that nested
// quotes keep their remaining depth.
func stripQuoteMarker(line string) string {
	if strings.HasPrefix(line, quoteMarkerSpaced) {
		return line[len(quoteMarkerSpaced):]
	}
	return line[len(quoteMarker):]
}
