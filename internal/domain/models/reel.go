// internal/domain/models/reel.go
package models

// Reel file types.
const (
	ReelImage = 0
	ReelVideo = 1
)

// Reel is a short promotional video or image posted by a provider.
type Reel struct {
	ID           string `src:"id"`
	ProviderID   string `src:"provider_id|provider.id"`
	ProviderName string `src:"provider.name|provider_name" default:"Unknown"`
	Description  string `src:"description|caption"`
	Date         string `src:"date|created_at"`
	MediaPath    string `src:"path|media|video|file"`
	FileType     int    `src:"file_type|type"`
}

// IsVideo reports whether the media is a video.
func (r Reel) IsVideo() bool {
	return r.FileType == ReelVideo
}

func (r *Reel) Derive(raw map[string]any) {
	if r.FileType != ReelVideo {
		r.FileType = ReelImage
	}
	if r.MediaPath == "" {
		r.MediaPath = DefaultImageURL
		r.FileType = ReelImage
	}
}
