package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/chess-federation/services"
)

type NewsHandler struct {
	newsService services.NewsService
}

func NewNewsHandler(ns services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: ns}
}

func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		badRequestResponse(w, r, errors.New("request must be multipart/form-data with an image"))
		return
	}
	cleanup, err := parseMultipart(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer cleanup()

	image, closeFile, err := optionalFormFile(r, "image")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer closeFile()

	input := services.CreateNewsInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}
	post, err := h.newsService.CreateNews(r.Context(), input, image)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"news": post}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", services.DefaultNewsLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	posts, err := h.newsService.ListNews(r.Context(), offset, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"data": posts, "offset": offset, "limit": limit}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	newsID, err := getIDFromURL(r, "newsID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.newsService.DeleteNews(r.Context(), newsID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
