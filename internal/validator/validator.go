// Package validator provides input validation for uploaded email files and
// addresses.
package validator

import (
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"

	apperrors "github.com/rcbc-digital/enquiry-mail/internal/errors"
)

// SupportedEmailExtensions are the container formats the parser accepts.
var SupportedEmailExtensions = map[string]struct{}{
	".msg": {},
	".eml": {},
}

// ValidateEmailAddress validates an email address format.
func ValidateEmailAddress(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: empty email address", apperrors.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: %q is not a valid email address", apperrors.ErrInvalidInput, email)
	}
	return nil
}

// ValidateEmailUpload checks an uploaded container file's extension and size.
func ValidateEmailUpload(filename string, size int64, maxSizeMB int) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := SupportedEmailExtensions[ext]; !ok {
		return fmt.Errorf("%w: please upload .msg or .eml files only", apperrors.ErrUnsupportedFileType)
	}

	maxBytes := int64(maxSizeMB) * 1024 * 1024
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: file size %d bytes exceeds %dMB limit", apperrors.ErrFileTooLarge, size, maxSizeMB)
	}
	return nil
}
