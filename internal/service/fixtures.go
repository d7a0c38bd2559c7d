package service

import "github.com/soundverse/soundverse/internal/models"

// fixtureClips returns the development fixture set inserted by seed mode.
func fixtureClips() []*models.Clip {
	return []*models.Clip{
		{
			Title:       "Chill Vibes",
			Description: "Relaxing ambient sound",
			Genre:       "ambient",
			Duration:    "30s",
			AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
		},
		{
			Title:       "Pop Spark",
			Description: "Upbeat pop tune",
			Genre:       "pop",
			Duration:    "30s",
			AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
		},
		{
			Title:       "Jazz Flow",
			Description: "Smooth jazz instrumental",
			Genre:       "jazz",
			Duration:    "30s",
			AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3",
		},
		{
			Title:       "Hip Hop Heat",
			Description: "Energetic hip hop beat",
			Genre:       "hiphop",
			Duration:    "30s",
			AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3",
		},
		{
			Title:       "Lo-Fi Dream",
			Description: "Chill lo-fi background loop",
			Genre:       "lofi",
			Duration:    "30s",
			AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-5.mp3",
		},
		{
			Title:       "EDM Bounce",
			Description: "Electronic dance music track",
			Genre:       "edm",
			Duration:    "30s",
			AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-6.mp3",
		},
	}
}
