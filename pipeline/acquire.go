package pipeline

import (
	"context"
	"encoding/json"

	"github.com/skillsenselab/protokoll/errors"
	"github.com/skillsenselab/protokoll/job"
)

// resolve probes the source metadata, derives the job directory from
// the title and today's date, opens the artifact store, and persists
// meta_info.json. Metadata is overwritten on every run, it is the one
// artifact that is not cached.
func (d *Driver) resolve(ctx context.Context, url string) (job.Store, error) {
	info, err := d.acquirer.Info(ctx, url)
	if err != nil {
		return nil, errors.Acquisition(url, err)
	}

	dir := job.Dir(d.outputRoot, info.Title, d.now())
	store, err := d.openStore(dir)
	if err != nil {
		return nil, errors.Acquisition(url, err)
	}

	meta := job.Meta{
		URL:         info.URL,
		Title:       info.Title,
		Description: info.Description,
	}
	data, err := json.MarshalIndent(meta, "", "    ")
	if err != nil {
		return nil, errors.Internal(err)
	}
	if err := store.Save(job.ArtifactMeta, data); err != nil {
		return nil, errors.Acquisition(url, err)
	}
	return store, nil
}

// fetchAudio downloads the raw audio track and converts it to WAV.
// Both files are durable at-most-once artifacts: each step is skipped
// when its file already exists. The stage value is the WAV path.
func (d *Driver) fetchAudio(ctx context.Context, store job.Store, url string) StageResult[string] {
	wavPath := store.Path(job.ArtifactWAVAudio)
	rawPath := store.Path(job.ArtifactRawAudio)

	if store.Has(job.ArtifactWAVAudio) {
		return Skipped(wavPath)
	}

	if !store.Has(job.ArtifactRawAudio) {
		if err := d.acquirer.Download(ctx, url, rawPath); err != nil {
			return Failed[string](errors.Acquisition(url, err))
		}
	}

	if err := d.audio.ConvertToWAV(ctx, rawPath, wavPath); err != nil {
		return Failed[string](errors.Acquisition(url, err))
	}
	return Computed(wavPath)
}
