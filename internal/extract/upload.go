package extract

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// DefaultUploadExtensions are the file extensions accepted without sniffing.
var DefaultUploadExtensions = []string{".txt", ".json", ".md", ".markdown"}

// DefaultUploadTypes are the sniffed content types accepted for files
// with any other extension.
var DefaultUploadTypes = []string{"text/plain", "application/json", "text/markdown"}

// UploadPolicy decides which uploaded files are handed to Extract.
type UploadPolicy struct {
	Extensions   []string
	ContentTypes []string
}

// DefaultUploadPolicy accepts text, JSON and markdown files.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		Extensions:   DefaultUploadExtensions,
		ContentTypes: DefaultUploadTypes,
	}
}

// Check accepts a file by extension, or failing that by its sniffed
// content type or any of that type's parents (JSON is also text/plain).
func (p UploadPolicy) Check(fileName string, content []byte) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != "" && slices.Contains(p.Extensions, ext) {
		return nil
	}

	for m := mimetype.Detect(content); m != nil; m = m.Parent() {
		for _, allowed := range p.ContentTypes {
			if m.Is(allowed) {
				return nil
			}
		}
	}

	return domain.NewValidationError("fileName", "unsupported file type")
}
