package mailparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testInbox = "memberenquiries@redcar-cleveland.gov.uk"

func TestDirectionClassifier_Classify(t *testing.T) {
	c := NewDirectionClassifier(testInbox)

	tests := []struct {
		name string
		to   string
		cc   string
		bcc  string
		body string
		want Direction
	}{
		{
			name: "inbox in to field",
			to:   "Member Enquiries <memberenquiries@redcar-cleveland.gov.uk>",
			want: DirectionIncoming,
		},
		{
			name: "inbox in cc field",
			to:   "someone@example.com",
			cc:   testInbox,
			want: DirectionIncoming,
		},
		{
			name: "inbox in bcc field",
			to:   "someone@example.com",
			bcc:  testInbox,
			want: DirectionIncoming,
		},
		{
			name: "case-insensitive address match",
			to:   "MemberEnquiries@Redcar-Cleveland.GOV.UK",
			want: DirectionIncoming,
		},
		{
			name: "warning banner at top of body",
			to:   "cllr.jones@example.com",
			body: warningBanner + "\n\nOriginal request follows.",
			want: DirectionIncoming,
		},
		{
			name: "notice banner at top of body",
			to:   "cllr.jones@example.com",
			body: "You don't often get email from resident@example.com. Learn why this is important.\nHello",
			want: DirectionIncoming,
		},
		{
			name: "banner outside scan window ignored",
			to:   "cllr.jones@example.com",
			body: strings.Repeat("x", bannerScanWindow) + warningBanner,
			want: DirectionOutgoing,
		},
		{
			name: "no inbox and no banner",
			to:   "resident@example.com",
			body: "Dear resident, thank you for your enquiry.",
			want: DirectionOutgoing,
		},
		{
			name: "all fields empty",
			want: DirectionOutgoing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.to, tt.cc, tt.bcc, tt.body))
		})
	}
}

func TestDirectionClassifier_EmptyInboxNeverMatchesAddresses(t *testing.T) {
	c := NewDirectionClassifier("")
	got := c.Classify("someone@example.com", "", "", "")
	assert.Equal(t, DirectionOutgoing, got)
}
