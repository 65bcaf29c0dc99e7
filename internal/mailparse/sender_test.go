package mailparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcbc-digital/enquiry-mail/internal/container"
)

func TestResolveSender(t *testing.T) {
	tests := []struct {
		name          string
		msg           container.Message
		wantEmailFrom string
		wantRawFrom   string
	}{
		{
			name: "explicit name and email",
			msg: container.Message{
				Sender:      "john.smith@example.com",
				SenderName:  "John Smith",
				SenderEmail: "john.smith@example.com",
			},
			wantEmailFrom: "John Smith <john.smith@example.com>",
			wantRawFrom:   "john.smith@example.com",
		},
		{
			name: "name parsed from raw header when explicit fields absent",
			msg: container.Message{
				Sender: "John Smith <john@example.com>",
			},
			wantEmailFrom: "John Smith <john@example.com>",
			wantRawFrom:   "John Smith <john@example.com>",
		},
		{
			name: "bare address in raw header",
			msg: container.Message{
				Sender: "jane@example.com",
			},
			wantEmailFrom: "jane@example.com",
			wantRawFrom:   "jane@example.com",
		},
		{
			name: "explicit email without name",
			msg: container.Message{
				SenderEmail: "jane@example.com",
			},
			wantEmailFrom: "jane@example.com",
		},
		{
			name: "explicit name beats raw header name",
			msg: container.Message{
				Sender:      "Nickname <john@example.com>",
				SenderName:  "John Smith",
				SenderEmail: "john@example.com",
			},
			wantEmailFrom: "John Smith <john@example.com>",
			wantRawFrom:   "Nickname <john@example.com>",
		},
		{
			name: "unparseable raw header passes through",
			msg: container.Message{
				Sender: "not-an-address",
			},
			wantEmailFrom: "not-an-address",
			wantRawFrom:   "not-an-address",
		},
		{
			name:          "nothing available",
			msg:           container.Message{},
			wantEmailFrom: "Unknown Sender",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailFrom, rawFrom := ResolveSender(&tt.msg)
			assert.Equal(t, tt.wantEmailFrom, emailFrom)
			assert.Equal(t, tt.wantRawFrom, rawFrom)
		})
	}
}

func TestFormatRecipientList(t *testing.T) {
	tests := []struct {
		name       string
		recipients string
		want       string
	}{
		{"empty", "", ""},
		{"single bare address", "a@example.com", "a@example.com"},
		{
			"named and bare mixed",
			"Jane Doe <jane@example.com>; b@example.com",
			"Jane Doe <jane@example.com>; b@example.com",
		},
		{
			"whitespace around entries trimmed",
			"  a@example.com ;  b@example.com  ",
			"a@example.com; b@example.com",
		},
		{"empty entries dropped", "a@example.com;;b@example.com", "a@example.com; b@example.com"},
		{"unparseable entry passes through", "Front Desk", "Front Desk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRecipientList(tt.recipients))
		})
	}
}

func TestExtractSenderAddress(t *testing.T) {
	tests := []struct {
		name   string
		parsed *ParsedEmail
		want   string
		wantOK bool
	}{
		{
			name:   "canonical form",
			parsed: &ParsedEmail{EmailFrom: "John Smith <john@example.com>"},
			want:   "john@example.com",
			wantOK: true,
		},
		{
			name:   "raw header fallback",
			parsed: &ParsedEmail{EmailFrom: "Unknown Sender", RawFrom: "jane@example.com"},
			want:   "jane@example.com",
			wantOK: true,
		},
		{
			name:   "no usable address",
			parsed: &ParsedEmail{EmailFrom: "Unknown Sender"},
			wantOK: false,
		},
		{
			name:   "nil parsed email",
			parsed: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSenderAddress(tt.parsed)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
