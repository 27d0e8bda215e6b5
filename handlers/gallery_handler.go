package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/Dosada05/chess-federation/services"
)

type GalleryHandler struct {
	galleryService services.GalleryService
}

func NewGalleryHandler(gs services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: gs}
}

func (h *GalleryHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		badRequestResponse(w, r, errors.New("request must be multipart/form-data with images"))
		return
	}
	cleanup, err := parseMultipart(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer cleanup()

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["images[]"]
	}

	files := make([]services.FileUpload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		upload, f, err := openUpload(fh)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		opened = append(opened, f)
		files = append(files, upload)
	}

	input := services.UploadImagesInput{
		Title: r.FormValue("title"),
		Album: r.FormValue("album"),
	}
	images, err := h.galleryService.UploadImages(r.Context(), input, files)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"images": images}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListImages поддерживает фильтр ?album=.
func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	album := r.URL.Query().Get("album")

	images, err := h.galleryService.ListImages(r.Context(), &album)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"images": images}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
