package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Dosada05/chess-federation/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

type createMatchJSON struct {
	RoundID   int     `json:"round_id"`
	Player1ID int     `json:"player1_id"`
	Player2ID int     `json:"player2_id"`
	Result    string  `json:"result"`
	Link      *string `json:"link"`
}

// CreateMatch принимает multipart-форму (с необязательным файлом pgnFile) или JSON без файла.
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var (
		input services.CreateMatchInput
		pgn   *services.FileUpload
	)

	if isMultipart(r) {
		cleanup, err := parseMultipart(w, r)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		defer cleanup()

		for name, dst := range map[string]*int{
			"round_id":   &input.RoundID,
			"player1_id": &input.Player1ID,
			"player2_id": &input.Player2ID,
		} {
			if *dst, err = formInt(r, name); err != nil {
				badRequestResponse(w, r, err)
				return
			}
		}
		input.Result = r.FormValue("result")
		input.Link = formString(r, "link")

		upload, closeFile, err := optionalFormFile(r, "pgnFile")
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		defer closeFile()
		pgn = upload
	} else {
		var body createMatchJSON
		if err := readJSON(w, r, &body); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		input = services.CreateMatchInput(body)
	}

	match, err := h.matchService.CreateMatch(r.Context(), input, pgn)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"match": match}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"matches": matches}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

// parseMultipart ограничивает размер тела и разбирает форму; cleanup удаляет временные файлы.
func parseMultipart(w http.ResponseWriter, r *http.Request) (func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBytes)
	if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
		return func() {}, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	return func() { _ = r.MultipartForm.RemoveAll() }, nil
}
