package pipeline

import (
	"context"
	"encoding/json"

	"github.com/skillsenselab/protokoll/diarization"
	"github.com/skillsenselab/protokoll/errors"
	"github.com/skillsenselab/protokoll/job"
)

// diarize returns the speaker turns for the job's audio, running the
// diarization model at most once per job directory. The raw turns are
// cached in diarization.json; a cache hit skips the model entirely.
//
// The cache round trip is order-preserving: turns are serialized and
// reloaded in the exact order the model emitted them, never re-sorted.
// A cache file that exists but cannot be parsed fails the stage loudly
// rather than recomputing, so a torn write is never silently papered
// over with a second expensive model call.
func (d *Driver) diarize(ctx context.Context, store job.Store, audioPath string) StageResult[[]diarization.Turn] {
	if store.Has(job.ArtifactDiarization) {
		data, err := store.Load(job.ArtifactDiarization)
		if err != nil {
			return Failed[[]diarization.Turn](errors.CacheCorrupted(store.Path(job.ArtifactDiarization), err))
		}
		var turns []diarization.Turn
		if err := json.Unmarshal(data, &turns); err != nil {
			return Failed[[]diarization.Turn](errors.CacheCorrupted(store.Path(job.ArtifactDiarization), err))
		}
		return Skipped(turns)
	}

	resp, err := d.diarizer.Diarize(ctx, diarization.DiarizationRequest{
		AudioPath: audioPath,
	})
	if err != nil {
		return Failed[[]diarization.Turn](errors.Diarization(err))
	}

	data, err := json.Marshal(resp.Turns)
	if err != nil {
		return Failed[[]diarization.Turn](errors.Internal(err))
	}
	if err := store.Save(job.ArtifactDiarization, data); err != nil {
		return Failed[[]diarization.Turn](errors.Diarization(err))
	}
	return Computed(resp.Turns)
}
