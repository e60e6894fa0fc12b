package acquisition

import (
	"context"

	"github.com/skillsenselab/protokoll/provider"
)

// Provider is the interface that acquisition backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Info resolves metadata for a video URL without downloading media.
	Info(ctx context.Context, url string) (*VideoInfo, error)

	// Download fetches the best available audio track for the URL and
	// writes it to dest. The container format of dest is backend
	// specific; callers convert to WAV separately.
	Download(ctx context.Context, url, dest string) error
}

// NewRegistry creates a registry for acquisition providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
