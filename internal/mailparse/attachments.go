package mailparse

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rcbc-digital/enquiry-mail/internal/container"
	"github.com/rcbc-digital/enquiry-mail/internal/storage"
)

// Storage categories for extracted files.
const (
	photoCategory    = "enquiry_photos"
	documentCategory = "enquiry_attachments/documents"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".bmp": {}, ".webp": {}, ".tiff": {}, ".tif": {},
}

var documentExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {},
}

// AttachmentExtractor writes image and document attachments to date-bucketed
// storage, resizing oversized images on the way. Unsupported attachment types
// are skipped silently.
type AttachmentExtractor struct {
	store     storage.FileStore
	resizer   *ImageResizer
	urlPrefix string
	logger    *slog.Logger
	now       func() time.Time
}

// NewAttachmentExtractor builds an extractor. urlPrefix is prepended to
// relative paths to form file URLs.
func NewAttachmentExtractor(store storage.FileStore, resizer *ImageResizer, urlPrefix string, logger *slog.Logger) *AttachmentExtractor {
	return &AttachmentExtractor{
		store:     store,
		resizer:   resizer,
		urlPrefix: urlPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

// Extract processes attachments in source order and returns records for those
// written to storage. A failure on one attachment is logged and skipped; it
// never aborts the remaining attachments. The returned slice is never nil.
func (e *AttachmentExtractor) Extract(attachments []container.Attachment) []AttachmentRecord {
	records := make([]AttachmentRecord, 0, len(attachments))
	if len(attachments) == 0 {
		return records
	}

	today := e.now()
	for _, att := range attachments {
		record, err := e.processOne(att, today)
		if err != nil {
			if e.logger != nil {
				e.logger.Error("failed to extract attachment",
					slog.String("filename", attachmentFilename(att)),
					slog.Any("error", err))
			}
			continue
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records
}

// processOne classifies, transforms and stores a single attachment. It
// returns (nil, nil) for attachment types that are ignored.
func (e *AttachmentExtractor) processOne(att container.Attachment, today time.Time) (*AttachmentRecord, error) {
	filename := attachmentFilename(att)
	ext := strings.ToLower(filepath.Ext(filename))

	_, isImage := imageExtensions[ext]
	_, isDocument := documentExtensions[ext]
	if !isImage && !isDocument {
		return nil, nil
	}
	if len(att.Data) == 0 {
		return nil, nil
	}

	data := att.Data
	wasResized := false
	finalSize := len(data)
	if isImage {
		data, wasResized, finalSize = e.resizer.Resize(filename, att.Data)
		// A resize re-encodes as JPEG, so the saved name must not keep a
		// mismatched extension.
		if wasResized && ext != ".jpg" && ext != ".jpeg" {
			ext = ".jpg"
		}
	}

	fileType := FileTypeDocument
	category := documentCategory
	if isImage {
		fileType = FileTypeImage
		category = photoCategory
	}

	savedFilename := uuid.New().String() + ext
	relPath, err := e.store.SaveBucketed(category, today, savedFilename, data)
	if err != nil {
		return nil, err
	}

	record := &AttachmentRecord{
		OriginalFilename: filename,
		SavedFilename:    savedFilename,
		FilePath:         relPath,
		FileSize:         finalSize,
		FileURL:          e.urlPrefix + relPath,
		FileType:         fileType,
		UploadType:       UploadTypeExtracted,
	}
	if isImage {
		record.WasResized = wasResized
		if wasResized {
			record.OriginalSize = len(att.Data)
		} else {
			record.OriginalSize = finalSize
		}
	}

	if e.logger != nil {
		e.logger.Info("extracted attachment",
			slog.String("type", string(fileType)),
			slog.String("filename", filename),
			slog.String("path", relPath),
			slog.Bool("resized", wasResized))
	}
	return record, nil
}

// attachmentFilename prefers the long filename, falling back to the short
// form.
func attachmentFilename(att container.Attachment) string {
	if att.LongFilename != "" {
		return att.LongFilename
	}
	if att.ShortFilename != "" {
		return att.ShortFilename
	}
	return "unknown"
}
