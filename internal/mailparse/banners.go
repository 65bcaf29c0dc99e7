package mailparse

import (
	"regexp"
	"strings"
)

// warningBanner is the fixed sentence council mail infrastructure injects into
// externally-originated mail.
const warningBanner = "WARNING: This email came from outside of the organisation. " +
	"Do not provide login or password details. Always be cautious opening links " +
	"and attachments wherever the email appears to come from. If you have any " +
	"doubts about this email, contact ICT."

// Fragments of the Microsoft "first contact" notice banner.
const (
	noticeBannerStart = "you don't often get email from"
	noticeBannerEnd   = "learn why this is important"
)

var (
	warningSentenceLower = strings.ToLower("WARNING: This email came from outside of the organisation.")

	noticeBannerPattern = regexp.MustCompile(`(?i)You don't often get email from [\s\S]+?\. Learn why this is important\.`)

	angleBracketLinkPattern = regexp.MustCompile(`<https?://[^>]+>`)

	newlinePattern = regexp.MustCompile(`\r\n|\r`)
)

// StripBanners removes lines containing known injected warning banners,
// passing all other lines through unchanged.
func StripBanners(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(newlinePattern.ReplaceAllString(text, "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, warningSentenceLower) {
			continue
		}
		if strings.Contains(lower, noticeBannerStart) && strings.Contains(lower, noticeBannerEnd) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// StripAngleBracketLinks removes auto-linkified <http://...> and <https://...>
// artifacts, leaving surrounding text and bracketed email addresses intact.
func StripAngleBracketLinks(text string) string {
	if text == "" {
		return ""
	}
	return angleBracketLinkPattern.ReplaceAllString(text, "")
}
