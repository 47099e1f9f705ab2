package http

import (
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func (s *Server) uploadMedia(w http.ResponseWriter, r *http.Request) {
	if s.uc.Media == nil {
		respondError(w, r, goerr.Wrap(usecase.ErrMediaNotConfigured, "media uploads disabled"))
		return
	}

	// Leave headroom for the multipart framing around the payload
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadSize+4096)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, goerr.Wrap(model.ErrValidation, "missing file upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, goerr.Wrap(model.ErrValidation, "failed to read upload"))
		return
	}

	result, err := s.uc.Media.Upload(r.Context(), header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, map[string]string{
		"key": result.Key,
		"url": result.URL,
	})
}
