package service

import (
	"context"
	"fmt"

	"github.com/soundverse/soundverse/internal/models"
)

// ClipRepository defines the interface for working with clips at the business logic layer.
type ClipRepository interface {
	// Create inserts a new clip into the repository with play_count and
	// last_played_at taking their store-side defaults.
	// Returns the created clip model or an error if the operation fails.
	Create(ctx context.Context, clip *models.Clip) (*models.Clip, error)

	// CreateBatch inserts multiple clips in one statement.
	// Returns an error if the operation fails.
	CreateBatch(ctx context.Context, clips []*models.Clip) error

	// GetAll retrieves every clip in implementation-defined order.
	GetAll(ctx context.Context) ([]*models.Clip, error)

	// GetByID retrieves a clip by its id.
	// Returns the clip model if found or an error if not found.
	GetByID(ctx context.Context, id int64) (*models.Clip, error)

	// RecordPlay atomically increments the clip's play counter and stamps
	// last_played_at with the store's current time.
	// Returns the updated clip model or an error if not found.
	RecordPlay(ctx context.Context, id int64) (*models.Clip, error)

	// DeleteAll removes every clip. Used only by seeding.
	DeleteAll(ctx context.Context) error
}

// ClipService provides methods to manage the clip catalog and playback tracking.
// The service uses a ClipRepository interface to interact with the underlying
// database and holds no cached state between requests.
type ClipService struct {
	repo ClipRepository
}

// NewClipService creates a new instance of ClipService with the provided repository.
func NewClipService(repo ClipRepository) *ClipService {
	return &ClipService{
		repo: repo,
	}
}

// ListClips retrieves all clips in the catalog.
func (s *ClipService) ListClips(ctx context.Context) ([]*models.Clip, error) {
	const op = "service.ClipService.ListClips"

	clips, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list clips: %w", op, err)
	}

	return clips, nil
}

// GetClip retrieves a single clip by id.
// If the id exists, it returns the corresponding clip model; otherwise, it returns an error.
func (s *ClipService) GetClip(ctx context.Context, id int64) (*models.Clip, error) {
	const op = "service.ClipService.GetClip"

	clip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get clip: %w", op, err)
	}

	return clip, nil
}

// CreateClip stores a new clip and returns the created record, including the
// generated id and a zero play count.
func (s *ClipService) CreateClip(ctx context.Context, clip *models.Clip) (*models.Clip, error) {
	const op = "service.ClipService.CreateClip"

	created, err := s.repo.Create(ctx, clip)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create clip: %w", op, err)
	}

	return created, nil
}

// RecordPlay registers a stream of the clip: the play counter is incremented
// and last_played_at is set to the store's current time. The returned clip
// carries the audio URL the caller should redirect to.
func (s *ClipService) RecordPlay(ctx context.Context, id int64) (*models.Clip, error) {
	const op = "service.ClipService.RecordPlay"

	clip, err := s.repo.RecordPlay(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to record play: %w", op, err)
	}

	return clip, nil
}

// GetClipStats retrieves the full clip record as its playback statistics.
// Kept as a distinct operation from GetClip: it backs a different external
// contract and performs no mutation.
func (s *ClipService) GetClipStats(ctx context.Context, id int64) (*models.Clip, error) {
	const op = "service.ClipService.GetClipStats"

	clip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get clip stats: %w", op, err)
	}

	return clip, nil
}

// SeedClips replaces the catalog contents with the fixture set.
// Running it twice leaves exactly the fixture clips, not an accumulation.
func (s *ClipService) SeedClips(ctx context.Context) error {
	const op = "service.ClipService.SeedClips"

	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%s: failed to reset catalog: %w", op, err)
	}

	if err := s.repo.CreateBatch(ctx, fixtureClips()); err != nil {
		return fmt.Errorf("%s: failed to seed clips: %w", op, err)
	}

	return nil
}
