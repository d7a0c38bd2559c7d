package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/soundverse/soundverse/internal/database"
	"github.com/soundverse/soundverse/internal/models"
	"github.com/soundverse/soundverse/pkg/response"
)

// handleWelcome handles requests to the root path.
func handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Welcome to the Soundverse!")
}

// clipRequest represents the request payload for creating a clip.
// Fields beyond these are ignored; play count and play time always take
// their store-side defaults.
type clipRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Duration    string `json:"duration"`
	AudioURL    string `json:"audioUrl" validate:"required,url"`
}

// clipResponse represents a clip on the wire. Field names are part of the
// external contract and must stay camel-case.
type clipResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Genre        string     `json:"genre"`
	Duration     string     `json:"duration"`
	AudioURL     string     `json:"audioUrl"`
	PlayCount    int64      `json:"playCount"`
	LastPlayedAt *time.Time `json:"lastPlayedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// toClipResponse converts a clip model from the business layer into a response payload.
func toClipResponse(clip *models.Clip) clipResponse {
	return clipResponse{
		ID:           clip.ID,
		Title:        clip.Title,
		Description:  clip.Description,
		Genre:        clip.Genre,
		Duration:     clip.Duration,
		AudioURL:     clip.AudioURL,
		PlayCount:    clip.PlayCount,
		LastPlayedAt: clip.LastPlayedAt,
		CreatedAt:    clip.CreatedAt,
		UpdatedAt:    clip.UpdatedAt,
	}
}

// clipID extracts the clip id from the route. A non-numeric id can't match
// any record, so it reports false and the caller answers 404.
func clipID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "clipID"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func clipNotFound(w http.ResponseWriter) {
	http.Error(w, "Clip not found", http.StatusNotFound)
}

func serverError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// handleListClips handles GET requests for the full catalog.
// The body is a bare JSON array of clips.
func handleListClips(svc ClipService) http.HandlerFunc {
	const op = "api.http.handleListClips"

	return func(w http.ResponseWriter, r *http.Request) {
		clips, err := svc.ListClips(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			serverError(w)
			return
		}

		data := make([]clipResponse, 0, len(clips))
		for _, clip := range clips {
			data = append(data, toClipResponse(clip))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, data)
	}
}

// handleCreateClip handles POST requests to add a clip to the catalog.
//
// The payload must carry a title and a valid audio URL; everything else is
// optional. On success the created record is returned with its generated id
// and a zero play count.
func handleCreateClip(svc ClipService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleCreateClip"

	return func(w http.ResponseWriter, r *http.Request) {
		var req clipRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		clip, err := svc.CreateClip(r.Context(), &models.Clip{
			Title:       req.Title,
			Description: req.Description,
			Genre:       req.Genre,
			Duration:    req.Duration,
			AudioURL:    req.AudioURL,
		})
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			serverError(w)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, toClipResponse(clip))
	}
}

// handleStreamClip handles GET requests to stream a clip.
//
// A successful stream records the play (counter increment, play time stamp)
// and redirects the client to the clip's audio URL verbatim.
func handleStreamClip(svc ClipService) http.HandlerFunc {
	const op = "api.http.handleStreamClip"

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clipID(r)
		if !ok {
			clipNotFound(w)
			return
		}

		clip, err := svc.RecordPlay(r.Context(), id)
		if err != nil {
			if errors.Is(err, database.ErrClipNotFound) {
				clipNotFound(w)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			serverError(w)
			return
		}

		http.Redirect(w, r, clip.AudioURL, http.StatusFound)
	}
}

// handleGetClipStats handles GET requests for a clip's playback statistics.
//
// The handler returns the full clip record, or a 404 if the clip doesn't
// exist. Repeated calls without intervening streams return identical bodies.
func handleGetClipStats(svc ClipService) http.HandlerFunc {
	const op = "api.http.handleGetClipStats"

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clipID(r)
		if !ok {
			clipNotFound(w)
			return
		}

		clip, err := svc.GetClipStats(r.Context(), id)
		if err != nil {
			if errors.Is(err, database.ErrClipNotFound) {
				clipNotFound(w)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			serverError(w)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, toClipResponse(clip))
	}
}
