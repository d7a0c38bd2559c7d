package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/soundverse/soundverse/internal/database"
	"github.com/soundverse/soundverse/internal/models"
)

type clipRecord struct {
	ID           int64      `db:"id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	Genre        string     `db:"genre"`
	Duration     string     `db:"duration"`
	AudioURL     string     `db:"audio_url"`
	PlayCount    int64      `db:"play_count"`
	LastPlayedAt *time.Time `db:"last_played_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (r *clipRecord) ToClip() *models.Clip {
	return &models.Clip{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Genre:        r.Genre,
		Duration:     r.Duration,
		AudioURL:     r.AudioURL,
		PlayCount:    r.PlayCount,
		LastPlayedAt: r.LastPlayedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ClipRepository struct {
	db *sqlx.DB
}

func NewClipRepository(db *sqlx.DB) *ClipRepository {
	return &ClipRepository{
		db: db,
	}
}

func (r *ClipRepository) Create(ctx context.Context, clip *models.Clip) (*models.Clip, error) {
	const op = "database.postgres.ClipRepository.Create"

	rec := new(clipRecord)
	query := `INSERT INTO clips(title, description, genre, duration, audio_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query,
		clip.Title, clip.Description, clip.Genre, clip.Duration, clip.AudioURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create clip record: %w", op, err)
	}

	return rec.ToClip(), nil
}

func (r *ClipRepository) CreateBatch(ctx context.Context, clips []*models.Clip) error {
	const op = "database.postgres.ClipRepository.CreateBatch"

	query := `INSERT INTO clips(title, description, genre, duration, audio_url)
		VALUES (:title, :description, :genre, :duration, :audio_url)`

	recs := make([]clipRecord, 0, len(clips))
	for _, clip := range clips {
		recs = append(recs, clipRecord{
			Title:       clip.Title,
			Description: clip.Description,
			Genre:       clip.Genre,
			Duration:    clip.Duration,
			AudioURL:    clip.AudioURL,
		})
	}

	if _, err := r.db.NamedExecContext(ctx, query, recs); err != nil {
		return fmt.Errorf("%s: failed to create clip records: %w", op, err)
	}

	return nil
}

func (r *ClipRepository) GetAll(ctx context.Context) ([]*models.Clip, error) {
	const op = "database.postgres.ClipRepository.GetAll"

	var recs []clipRecord
	query := `SELECT * FROM clips`

	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("%s: failed to get clip records: %w", op, err)
	}

	clips := make([]*models.Clip, 0, len(recs))
	for i := range recs {
		clips = append(clips, recs[i].ToClip())
	}

	return clips, nil
}

func (r *ClipRepository) GetByID(ctx context.Context, id int64) (*models.Clip, error) {
	const op = "database.postgres.ClipRepository.GetByID"

	rec := new(clipRecord)
	query := `SELECT * FROM clips WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrClipNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get clip record: %w", op, err)
	}

	return rec.ToClip(), nil
}

// RecordPlay bumps the play counter and stamps last_played_at in a single
// statement. The increment happens store-side, so concurrent streams of the
// same clip can't lose updates.
func (r *ClipRepository) RecordPlay(ctx context.Context, id int64) (*models.Clip, error) {
	const op = "database.postgres.ClipRepository.RecordPlay"

	rec := new(clipRecord)
	query := `UPDATE clips
		SET play_count = play_count + 1,
			last_played_at = now(),
			updated_at = now()
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrClipNotFound)
		}

		return nil, fmt.Errorf("%s: failed to record play: %w", op, err)
	}

	return rec.ToClip(), nil
}

func (r *ClipRepository) DeleteAll(ctx context.Context) error {
	const op = "database.postgres.ClipRepository.DeleteAll"

	query := `TRUNCATE clips RESTART IDENTITY`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s: failed to delete clip records: %w", op, err)
	}

	return nil
}
