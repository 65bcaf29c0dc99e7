package mailparse

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/rcbc-digital/enquiry-mail/internal/container"
)

// ResolveSender builds the canonical "Name <email>" display form from the
// fragmentary sender fields a container exposes. Explicit name/email fields
// take priority over parsing the raw header. It also returns the raw sender
// header unmodified for audit.
func ResolveSender(msg *container.Message) (emailFrom, rawFrom string) {
	rawFrom = msg.Sender
	name := msg.SenderName
	email := msg.SenderEmail

	if email == "" && rawFrom != "" {
		if addr, err := mail.ParseAddress(strings.TrimSpace(rawFrom)); err == nil {
			email = addr.Address
			if name == "" {
				name = addr.Name
			}
		}
	}

	switch {
	case name != "" && email != "":
		emailFrom = fmt.Sprintf("%s <%s>", name, email)
	case email != "":
		emailFrom = email
	case rawFrom != "":
		emailFrom = rawFrom
	default:
		emailFrom = unknownSender
	}
	return emailFrom, rawFrom
}

// FormatRecipientList normalizes a semicolon-separated recipient header into a
// "Name <addr>; addr" display string. Entries that cannot be parsed as
// addresses pass through unchanged.
func FormatRecipientList(recipients string) string {
	if recipients == "" {
		return ""
	}

	var formatted []string
	for _, entry := range strings.Split(recipients, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		addr, err := mail.ParseAddress(entry)
		switch {
		case err == nil && addr.Name != "":
			formatted = append(formatted, fmt.Sprintf("%s <%s>", addr.Name, addr.Address))
		case err == nil:
			formatted = append(formatted, addr.Address)
		default:
			formatted = append(formatted, entry)
		}
	}
	return strings.Join(formatted, "; ")
}

// ExtractSenderAddress pulls the bare address out of a resolved ParsedEmail,
// trying the canonical form first and the raw header as fallback.
func ExtractSenderAddress(parsed *ParsedEmail) (string, bool) {
	if parsed == nil {
		return "", false
	}
	for _, candidate := range []string{parsed.EmailFrom, parsed.RawFrom} {
		if candidate == "" {
			continue
		}
		if addr, err := mail.ParseAddress(strings.TrimSpace(candidate)); err == nil {
			return addr.Address, true
		}
	}
	return "", false
}
