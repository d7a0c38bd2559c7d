package models

import "time"

// Clip represents an audio clip's catalog record and its playback metadata.
// It points at the audio asset by URL; the audio bytes themselves are never
// stored or touched by this service.
type Clip struct {
	// ID is the unique identifier for the clip record, assigned by the store.
	ID int64
	// Title is a short text label for the clip.
	Title string
	// Description is free text describing the clip.
	Description string
	// Genre is a short text category with no enumerated constraint.
	Genre string
	// Duration is a text label (e.g. "30s"), not a validated numeric type.
	Duration string
	// AudioURL is the canonical address of the underlying audio asset.
	AudioURL string
	// PlayCount tracks the number of times the clip has been streamed.
	PlayCount int64
	// LastPlayedAt is the time of the most recent stream, nil if unknown.
	LastPlayedAt *time.Time
	// CreatedAt is the timestamp indicating when the clip was created.
	CreatedAt time.Time
	// UpdatedAt is the timestamp indicating when the clip was last updated.
	UpdatedAt time.Time
}
