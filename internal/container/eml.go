package container

import (
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/jhillyerd/enmime"
)

// EMLReader decodes RFC-822 .eml files into the Message capability shape.
type EMLReader struct{}

// Open parses the .eml file at path.
func (EMLReader) Open(path string) (*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open eml file: %w", err)
	}
	defer f.Close()

	env, err := enmime.ReadEnvelope(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse eml file: %w", err)
	}

	msg := &Message{
		Sender:    env.GetHeader("From"),
		To:        joinAddressHeader(env, "To"),
		CC:        joinAddressHeader(env, "Cc"),
		BCC:       joinAddressHeader(env, "Bcc"),
		Subject:   env.GetHeader("Subject"),
		PlainBody: env.Text,
		HTMLBody:  env.HTML,
	}

	if addr, err := mail.ParseAddress(msg.Sender); err == nil {
		msg.SenderName = addr.Name
		msg.SenderEmail = addr.Address
	}

	if t, err := mail.ParseDate(env.GetHeader("Date")); err == nil {
		msg.ReceivedTime = &t
	}

	for _, att := range env.Attachments {
		msg.Attachments = append(msg.Attachments, Attachment{
			LongFilename: att.FileName,
			Data:         att.Content,
		})
	}
	// Inline parts with a filename are attachments for our purposes too.
	for _, att := range env.Inlines {
		if att.FileName != "" {
			msg.Attachments = append(msg.Attachments, Attachment{
				LongFilename: att.FileName,
				Data:         att.Content,
			})
		}
	}

	return msg, nil
}

// joinAddressHeader renders an address header as a semicolon-separated list,
// matching the recipient shape binary containers expose.
func joinAddressHeader(env *enmime.Envelope, header string) string {
	addrs, err := env.AddressList(header)
	if err != nil || len(addrs) == 0 {
		return env.GetHeader(header)
	}

	parts := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr.Name != "" {
			parts = append(parts, fmt.Sprintf("%s <%s>", addr.Name, addr.Address))
		} else {
			parts = append(parts, addr.Address)
		}
	}
	return strings.Join(parts, "; ")
}
