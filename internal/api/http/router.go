package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/soundverse/soundverse/internal/models"
)

// ClipService defines the interface for the core clip catalog business logic.
type ClipService interface {
	// ListClips retrieves every clip in the catalog.
	ListClips(ctx context.Context) ([]*models.Clip, error)

	// GetClip retrieves a single clip by id.
	// It returns the clip details or an error if the clip is not found.
	GetClip(ctx context.Context, id int64) (*models.Clip, error)

	// CreateClip stores a new clip and returns the created record,
	// including the generated id.
	CreateClip(ctx context.Context, clip *models.Clip) (*models.Clip, error)

	// RecordPlay registers a stream of the clip, incrementing its play
	// counter and stamping the play time. It returns the updated clip,
	// whose audio URL the caller redirects to.
	RecordPlay(ctx context.Context, id int64) (*models.Clip, error)

	// GetClipStats retrieves the clip's full record as playback statistics.
	// It performs no mutation.
	GetClipStats(ctx context.Context, id int64) (*models.Clip, error)
}

// getValidate initializes a new validator instance for validating incoming request payloads.
// It customizes tag name extraction from struct fields to match JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, clipSvc ClipService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(collectMetrics)

	r.Get("/", handleWelcome)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/clips", func(r chi.Router) {
		validate := getValidate()

		r.Get("/", handleListClips(clipSvc))
		r.Post("/", handleCreateClip(clipSvc, validate))

		r.Route("/{clipID}", func(r chi.Router) {
			r.Get("/stream", handleStreamClip(clipSvc))
			r.Get("/stats", handleGetClipStats(clipSvc))
		})
	})

	return r
}
