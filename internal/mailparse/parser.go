package mailparse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rcbc-digital/enquiry-mail/internal/container"
)

// Fatal parse errors. Everything else in the pipeline degrades gracefully
// and never surfaces to the caller.
var (
	// ErrContainerOpen indicates the container could not be opened or
	// decoded at all.
	ErrContainerOpen = errors.New("failed to open/parse container")
	// ErrParse indicates an unexpected failure after the container was
	// opened.
	ErrParse = errors.New("general error processing container")
)

// Parser orchestrates the full pipeline for one container: sender and date
// resolution, direction classification, body rendering and attachment
// extraction. A Parser is stateless across calls and safe for concurrent use.
type Parser struct {
	reader    container.Reader
	dates     *DateResolver
	direction *DirectionClassifier
	extractor *AttachmentExtractor
	logger    *slog.Logger
}

// NewParser wires the pipeline components together.
func NewParser(reader container.Reader, dates *DateResolver, direction *DirectionClassifier, extractor *AttachmentExtractor, logger *slog.Logger) *Parser {
	return &Parser{
		reader:    reader,
		dates:     dates,
		direction: direction,
		extractor: extractor,
		logger:    logger,
	}
}

// Parse converts the container at path into a ParsedEmail. It returns either
// a complete record or an error, never both; the container is closed on every
// exit path. Parsing is idempotent apart from attachment files written to
// storage, which use collision-free names.
func (p *Parser) Parse(path string, mode BodyMode, skipAttachments bool) (parsed *ParsedEmail, err error) {
	msg, openErr := p.reader.Open(path)
	if openErr != nil {
		if p.logger != nil {
			p.logger.Error("container open failed",
				slog.String("path", path),
				slog.Any("error", openErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrContainerOpen, openErr)
	}
	defer func() {
		if closeErr := msg.Close(); closeErr != nil && p.logger != nil {
			p.logger.Warn("container close failed",
				slog.String("path", path),
				slog.Any("error", closeErr))
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("panic while processing container",
					slog.String("path", path),
					slog.Any("panic", r))
			}
			parsed = nil
			err = fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	emailFrom, rawFrom := ResolveSender(msg)
	emailDate, emailDateStr := p.dates.Resolve(msg)
	direction := p.direction.Classify(msg.To, msg.CC, msg.BCC, msg.PlainBody)

	var bodyContent string
	var isHTML bool
	switch mode {
	case ModeSnippet:
		bodyContent, isHTML = RenderSnippet(msg.PlainBody)
	case ModePlain:
		bodyContent, isHTML = RenderPlain(msg.PlainBody)
	default:
		// Full mode, also the fallback for unrecognized modes.
		bodyContent, isHTML = RenderFull(msg.HTMLBody, msg.PlainBody)
	}

	attachments := make([]AttachmentRecord, 0)
	if !skipAttachments {
		attachments = p.extractor.Extract(msg.Attachments)
	}

	emailTo := FormatRecipientList(msg.To)
	if emailTo == "" {
		emailTo = unknownRecipients
	}
	subject := msg.Subject
	if subject == "" {
		subject = noSubject
	}
	if bodyContent == "" {
		bodyContent = noBodyContent
	}

	return &ParsedEmail{
		RawFrom:          rawFrom,
		EmailFrom:        emailFrom,
		EmailTo:          emailTo,
		EmailCC:          FormatRecipientList(msg.CC),
		Subject:          subject,
		EmailDate:        emailDate,
		EmailDateStr:     emailDateStr,
		BodyContent:      bodyContent,
		Direction:        direction,
		HasAttachments:   len(msg.Attachments) > 0,
		IsHTML:           isHTML,
		ImageAttachments: attachments,
	}, nil
}
