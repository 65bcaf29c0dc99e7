package mailparse

import (
	"regexp"
	"strings"
)

// Paragraph-break heuristics. The threshold and word lists are empirically
// tuned against real council mailbox traffic and are preserved verbatim; they
// carry known false-positive/negative risk and are not a grammar.
const shortLineLength = 15

var (
	closingWords = map[string]struct{}{
		"thanks":  {},
		"Thanks":  {},
		"regards": {},
		"Regards": {},
	}

	// A bare two-word capitalized name, the usual start of a signature.
	signatureNamePattern = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)

	signatureWords = []string{"Team", "Department", "Officer"}

	emailHeaderPattern = regexp.MustCompile(`(?i)^From:`)

	blankLinePattern = regexp.MustCompile(`\n[ \t]+\n`)

	multiBreakPattern = regexp.MustCompile(`\n{3,}`)
)

// normalizePlainText folds all line-ending variants to "\n" and collapses
// lines containing only horizontal whitespace.
func normalizePlainText(text string) string {
	text = newlinePattern.ReplaceAllString(text, "\n")
	return blankLinePattern.ReplaceAllString(text, "\n")
}

// reconstructLines converts a flat sequence of lines into a paragraph
// structure: non-empty lines with "" markers where a paragraph break belongs.
// Original empty lines are dropped; breaks are re-derived from the adjacency
// heuristics so that soft-wrapped prose joins up and signatures, closings and
// embedded reply headers separate.
func reconstructLines(lines []string) []string {
	var processed []string
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}
		processed = append(processed, line)

		j := nextContentIndex(lines, i+1)
		if j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if needsParagraphBreak(line, next) {
				processed = append(processed, "")
			}
			if emailHeaderPattern.MatchString(next) {
				processed = append(processed, "")
			}
			i = j
		} else {
			i = len(lines)
		}
	}
	return processed
}

// nextContentIndex skips empty lines from start and returns the index of the
// next non-empty line, or len(lines).
func nextContentIndex(lines []string, start int) int {
	j := start
	for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
		j++
	}
	return j
}

// needsParagraphBreak decides whether a paragraph break belongs between two
// adjacent content lines.
func needsParagraphBreak(line, next string) bool {
	if _, ok := closingWords[line]; ok {
		return true
	}

	if len(line) >= shortLineLength {
		return false
	}

	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") ||
		strings.HasSuffix(line, "?") || strings.HasSuffix(line, ":") ||
		strings.HasSuffix(line, ";") {
		return true
	}

	if signatureNamePattern.MatchString(next) {
		return true
	}
	for _, word := range signatureWords {
		if strings.Contains(next, word) {
			return true
		}
	}
	return false
}
