// Package mailparse converts legacy mail containers into normalized,
// sanitized records for the enquiry-tracking backend.
package mailparse

import "time"

// Direction classifies message traffic relative to the monitored inbox.
type Direction string

const (
	DirectionIncoming Direction = "INCOMING"
	DirectionOutgoing Direction = "OUTGOING"
)

// BodyMode selects how the message body is rendered.
type BodyMode string

const (
	// ModeSnippet produces a short plain-text preview for form population.
	ModeSnippet BodyMode = "snippet"
	// ModePlain produces full plain text for history notes.
	ModePlain BodyMode = "plain"
	// ModeFull produces HTML for display.
	ModeFull BodyMode = "full"
)

// FileType categorizes an extracted attachment.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
)

// UploadTypeExtracted marks attachments pulled out of a parsed message, as
// opposed to files uploaded directly by a user.
const UploadTypeExtracted = "extracted"

// Fallback values for fields the container could not provide.
const (
	unknownSender     = "Unknown Sender"
	unknownRecipients = "Unknown Recipient(s)"
	noSubject         = "(No Subject)"
	noBodyContent     = "(No body content)"
)

// ParsedEmail is the normalized result of parsing one container.
type ParsedEmail struct {
	RawFrom          string             `json:"raw_from"`
	EmailFrom        string             `json:"email_from"`
	EmailTo          string             `json:"email_to"`
	EmailCC          string             `json:"email_cc"`
	Subject          string             `json:"subject"`
	EmailDate        time.Time          `json:"email_date"`
	EmailDateStr     string             `json:"email_date_str"`
	BodyContent      string             `json:"body_content"`
	Direction        Direction          `json:"direction"`
	HasAttachments   bool               `json:"has_attachments"`
	IsHTML           bool               `json:"is_html"`
	ImageAttachments []AttachmentRecord `json:"image_attachments"`
}

// AttachmentRecord describes one extracted attachment written to storage.
// WasResized and OriginalSize are only meaningful for images.
type AttachmentRecord struct {
	OriginalFilename string   `json:"original_filename"`
	SavedFilename    string   `json:"saved_filename"`
	FilePath         string   `json:"file_path"`
	FileSize         int      `json:"file_size"`
	FileURL          string   `json:"file_url"`
	FileType         FileType `json:"file_type"`
	UploadType       string   `json:"upload_type"`
	WasResized       bool     `json:"was_resized"`
	OriginalSize     int      `json:"original_size"`
}
