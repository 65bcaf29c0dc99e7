package mailparse

import "strings"

// bannerScanWindow bounds how far into the body banner detection looks.
// Injected banners appear at the very top of the message.
const bannerScanWindow = 400

// DirectionClassifier labels messages INCOMING or OUTGOING relative to the
// designated enquiries inbox.
type DirectionClassifier struct {
	inboxAddress string
}

// NewDirectionClassifier builds a classifier for the given inbox address.
func NewDirectionClassifier(inboxAddress string) *DirectionClassifier {
	return &DirectionClassifier{inboxAddress: strings.ToLower(inboxAddress)}
}

// Classify applies address matching first (to, then cc, then bcc); the body
// banner scan only runs when no address field matches. External warning
// banners are a heuristic secondary signal, useful for forwarded mail where
// the inbox address no longer appears in the recipient fields.
func (c *DirectionClassifier) Classify(to, cc, bcc, plainBody string) Direction {
	for _, field := range []string{to, cc, bcc} {
		if c.addressFieldContainsInbox(field) {
			return DirectionIncoming
		}
	}
	if hasExternalWarningBanner(plainBody) {
		return DirectionIncoming
	}
	return DirectionOutgoing
}

func (c *DirectionClassifier) addressFieldContainsInbox(field string) bool {
	if field == "" || c.inboxAddress == "" {
		return false
	}
	return strings.Contains(strings.ToLower(FormatRecipientList(field)), c.inboxAddress)
}

// hasExternalWarningBanner reports whether the start of the body carries one
// of the known injected banners.
func hasExternalWarningBanner(plainBody string) bool {
	if plainBody == "" {
		return false
	}

	start := plainBody
	if runes := []rune(start); len(runes) > bannerScanWindow {
		start = string(runes[:bannerScanWindow])
	}

	if strings.Contains(start, warningBanner) {
		return true
	}
	return noticeBannerPattern.MatchString(start)
}
