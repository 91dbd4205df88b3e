package api

import (
	"errors"
	"fmt"
	"net/http"

	"arenawallet/service"
)

const maxUploadBytes = 8 << 20

// saveUpload stores the multipart file sent under field and returns its
// public path
func (s *Server) saveUpload(r *http.Request, field string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", fmt.Errorf("%w: invalid multipart form", service.ErrValidation)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%w: missing %s file", service.ErrValidation, field)
	}
	defer file.Close()

	path, err := s.uploads.Save(header.Filename, file)
	if err != nil {
		return "", fmt.Errorf("%w: %s", service.ErrValidation, err)
	}
	return path, nil
}

// optionalUpload is like saveUpload but returns "" when no file was sent.
// The form must already be parsed.
func (s *Server) optionalUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s file", service.ErrValidation, field)
	}
	defer file.Close()

	path, err := s.uploads.Save(header.Filename, file)
	if err != nil {
		return "", fmt.Errorf("%w: %s", service.ErrValidation, err)
	}
	return path, nil
}
