package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// Admin uploads are images, documents and short videos; anything bigger is
// rejected before it hits storage.
const maxUploadSize = 100 << 20 // 100 MiB

// fileFromForm extracts one multipart file field. A missing field returns
// (nil, nil): on update endpoints that means "keep the current asset".
func fileFromForm(r *http.Request, field string) (*charity.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read form file %q: %w", field, err)
	}

	return &charity.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}, nil
}

// formValue returns a pointer to a form field's value, nil when the field
// was not submitted at all. Distinguishes "clear this field" from "leave it".
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// errInvalidForm is returned for unparseable or oversized multipart bodies
var errInvalidForm = errors.New("invalid multipart form")

func parseMultipart(r *http.Request) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return errInvalidForm
	}
	return nil
}
