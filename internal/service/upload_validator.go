package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"internhub/internal/errors"
)

// MaxResumeSize is the size ceiling for CV/resume uploads.
const MaxResumeSize = 5 * 1024 * 1024

var (
	documentExtensions   = []string{".pdf", ".doc", ".docx"}
	transcriptExtensions = []string{".pdf"}
)

// UploadValidator validates opaque file references handed to the core.
// Actual storage is external; extension and size rules are core validation.
type UploadValidator struct{}

// NewUploadValidator creates a new upload validator.
func NewUploadValidator() *UploadValidator {
	return &UploadValidator{}
}

// ValidateResume validates a CV/resume reference and its declared size.
func (v *UploadValidator) ValidateResume(filename string, size int64) error {
	if err := v.checkExtension(filename, documentExtensions); err != nil {
		return err
	}
	if size > MaxResumeSize {
		return errors.NewValidation("cv/resume exceeds the 5 MB limit")
	}
	return nil
}

// ValidateDocument validates a generic document reference (cover letters,
// report attachments).
func (v *UploadValidator) ValidateDocument(filename string) error {
	return v.checkExtension(filename, documentExtensions)
}

// ValidateTranscript validates an academic transcript reference.
func (v *UploadValidator) ValidateTranscript(filename string) error {
	return v.checkExtension(filename, transcriptExtensions)
}

func (v *UploadValidator) checkExtension(filename string, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.NewValidation("file has no extension")
	}
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return errors.NewValidation(
		fmt.Sprintf("file extension %s not allowed, expected one of %s",
			ext, strings.Join(allowed, ", ")))
}
