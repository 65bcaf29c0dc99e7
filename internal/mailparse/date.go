package mailparse

import (
	"log/slog"
	"time"

	"github.com/rcbc-digital/enquiry-mail/internal/container"
)

// displayFormat renders the civil display zone's abbreviation (GMT or BST for
// Europe/London) based on the calendar date.
const displayFormat = "Jan 02, 2006 15:04 MST"

// DateResolver selects the best available timestamp for a message from an
// ordered list of sources and normalizes it to UTC plus a display string.
type DateResolver struct {
	localZone   *time.Location
	displayZone *time.Location
	logger      *slog.Logger
	now         func() time.Time
}

// NewDateResolver builds a resolver. Naive container timestamps (sent-time
// calendar parts) are assumed to be in localZone; the display string is
// rendered in displayZone.
func NewDateResolver(localZone, displayZone *time.Location, logger *slog.Logger) *DateResolver {
	return &DateResolver{
		localZone:   localZone,
		displayZone: displayZone,
		logger:      logger,
		now:         time.Now,
	}
}

// Resolve returns the message timestamp in UTC and its display string. When no
// source yields a usable value it falls back to the current instant; it never
// fails.
func (r *DateResolver) Resolve(msg *container.Message) (time.Time, string) {
	attempts := []func(*container.Message) (time.Time, bool){
		r.fromReceivedTime,
		r.fromSentTimeParts,
	}
	for _, attempt := range attempts {
		if t, ok := attempt(msg); ok {
			utc := t.UTC()
			return utc, r.DisplayString(utc)
		}
	}

	if r.logger != nil {
		r.logger.Warn("no usable date source in message, falling back to current time")
	}
	now := r.now().UTC()
	return now, r.DisplayString(now)
}

// fromReceivedTime uses the delivery timestamp. Decoders supply it
// timezone-aware, so it is used as-is.
func (r *DateResolver) fromReceivedTime(msg *container.Message) (time.Time, bool) {
	if msg.ReceivedTime == nil || msg.ReceivedTime.IsZero() {
		return time.Time{}, false
	}
	return *msg.ReceivedTime, true
}

// fromSentTimeParts uses the client submit time. The parts are naive calendar
// values, assumed to be in the configured local zone.
func (r *DateResolver) fromSentTimeParts(msg *container.Message) (time.Time, bool) {
	p := msg.SentTimeParts
	if len(p) < 6 {
		return time.Time{}, false
	}
	t := time.Date(p[0], time.Month(p[1]), p[2], p[3], p[4], p[5], 0, r.localZone)
	return t, true
}

// DisplayString formats a timestamp in the display zone, e.g.
// "Jun 15, 2024 10:00 BST".
func (r *DateResolver) DisplayString(t time.Time) string {
	return t.In(r.displayZone).Format(displayFormat)
}
