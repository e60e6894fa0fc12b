package acquisition

// VideoInfo holds the metadata a backend resolves for a video URL.
type VideoInfo struct {
	// URL is the canonical watch URL of the video.
	URL string `json:"url"`
	// Title is the video title as published by the source.
	Title string `json:"title"`
	// Description is the video description. May be empty.
	Description string `json:"description,omitempty"`
	// Duration is the video duration in seconds, when reported.
	Duration float64 `json:"duration,omitempty"`
}
