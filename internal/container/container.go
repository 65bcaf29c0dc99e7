// Package container defines the boundary to legacy mail-container decoders.
// A decoder opens a single container file and surfaces whatever fields it can
// recover; everything it cannot recover is left at its zero value or nil.
package container

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoDecoder indicates no decoder is registered for a file extension.
var ErrNoDecoder = errors.New("no decoder registered for file extension")

// Attachment is a raw attachment exactly as the container stores it.
// LongFilename is preferred over ShortFilename when both are present.
type Attachment struct {
	LongFilename  string
	ShortFilename string
	Data          []byte
}

// Message exposes the fields a container decoder can surface from one message.
// Optional fields are nil (ReceivedTime, SentTimeParts) or empty when the
// container does not carry them; consumers must not assume presence.
type Message struct {
	// Sender is the raw, unprocessed sender header.
	Sender      string
	SenderName  string
	SenderEmail string

	// Recipient headers as stored, typically semicolon-separated.
	To  string
	CC  string
	BCC string

	Subject   string
	PlainBody string
	HTMLBody  string

	// ReceivedTime is the delivery timestamp, timezone-aware when present.
	ReceivedTime *time.Time
	// SentTimeParts is the client submit time as naive calendar parts
	// (year, month, day, hour, minute, second), when present.
	SentTimeParts []int

	Attachments []Attachment

	closeFn func() error
	closed  bool
}

// SetCloser attaches the decoder's resource release function.
func (m *Message) SetCloser(fn func() error) {
	m.closeFn = fn
}

// Close releases decoder resources. It is safe to call more than once.
func (m *Message) Close() error {
	if m == nil || m.closed || m.closeFn == nil {
		if m != nil {
			m.closed = true
		}
		return nil
	}
	m.closed = true
	return m.closeFn()
}

// Reader opens a container file and decodes it into a Message.
// Implementations must return an error rather than a partially valid Message.
type Reader interface {
	Open(path string) (*Message, error)
}

// Registry routes container files to decoders by file extension. The binary
// .msg decoder is an external capability: embedders register their own
// implementation alongside the built-in .eml reader.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register associates a decoder with a file extension (e.g. ".msg").
func (r *Registry) Register(ext string, reader Reader) {
	r.readers[strings.ToLower(ext)] = reader
}

// Open decodes the container at path using the decoder registered for its
// extension.
func (r *Registry) Open(path string) (*Message, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDecoder, ext)
	}
	return reader.Open(path)
}
