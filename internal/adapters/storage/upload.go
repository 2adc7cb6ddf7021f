package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"evently/internal/domain"
)

// ImageField is the multipart field carrying an event image.
const ImageField = "eventImage"

// formOverhead is extra body room for the non-file form fields.
const formOverhead = 1 << 20

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// CheckImageHeader validates the declared name, type and size of an uploaded file.
// It runs before any byte is written to disk.
func CheckImageHeader(fh *multipart.FileHeader, maxBytes int64) error {
	if fh.Size > maxBytes {
		return domain.ErrImageTooLarge
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(fh.Filename))]; !ok {
		return domain.ErrImageExtension
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(fh.Header.Get("Content-Type"), ";")[0]))
	if _, ok := allowedContentTypes[contentType]; !ok {
		return domain.ErrInvalidImageType
	}
	return nil
}

// ParseMultipartEvent parses a multipart event form with the body capped at maxImageBytes
// plus room for text fields. It returns the optional image found under ImageField.
// A request that is not multipart is accepted as having no image.
func ParseMultipartEvent(w http.ResponseWriter, r *http.Request, maxImageBytes int64) (*domain.ImageUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+formOverhead)
	if err := r.ParseMultipartForm(maxImageBytes + formOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, domain.ErrImageTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			if perr := r.ParseForm(); perr != nil {
				return nil, domain.NewValidationError("invalid form body")
			}
			return nil, nil
		default:
			return nil, domain.NewValidationError(fmt.Sprintf("File upload error: %v", err))
		}
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File[ImageField]) == 0 {
		return nil, nil
	}
	files := r.MultipartForm.File[ImageField]
	if len(files) > 1 {
		return nil, domain.NewValidationError("File upload error: Unexpected field")
	}
	fh := files[0]
	if err := CheckImageHeader(fh, maxImageBytes); err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(data)) > maxImageBytes {
		return nil, domain.ErrImageTooLarge
	}
	return &domain.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
