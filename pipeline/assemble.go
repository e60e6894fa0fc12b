package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillsenselab/protokoll/diarization"
	"github.com/skillsenselab/protokoll/errors"
	"github.com/skillsenselab/protokoll/job"
	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/protocol"
	"github.com/skillsenselab/protokoll/transcription"
)

// assemble turns speaker turns into protocol segments by slicing the
// job audio per turn and transcribing each slice, strictly in turn
// order. Each turn leaves two artifacts under speakers/{speaker}/: the
// audio slice and its transcript. A transcription failure fails the
// whole assembly; no partial protocol is ever persisted.
func (d *Driver) assemble(ctx context.Context, store job.Store, audioPath string, turns []diarization.Turn) ([]protocol.Segment, error) {
	segments := make([]protocol.Segment, 0, len(turns))
	for _, turn := range turns {
		id := segmentID(turn.Start, turn.End)

		slicePath, err := store.SpeakerFile(turn.Speaker, "segment_"+id+".wav")
		if err != nil {
			return nil, errors.Extraction("create speaker directory", err)
		}
		if err := d.audio.Slice(ctx, audioPath, slicePath, turn.Start, turn.End); err != nil {
			return nil, errors.Extraction(fmt.Sprintf("slice %s [%.2f, %.2f)", audioPath, turn.Start, turn.End), err)
		}

		resp, err := d.transcriber.Transcribe(ctx, transcription.TranscriptionRequest{
			AudioPath: slicePath,
			Language:  d.language,
		})
		if err != nil {
			return nil, errors.Transcription(turn.Speaker, turn.Start, turn.End, err)
		}
		text := strings.TrimSpace(resp.Text)

		if err := store.SaveSpeakerFile(turn.Speaker, "transcript_"+id+".txt", []byte(text)); err != nil {
			return nil, errors.Transcription(turn.Speaker, turn.Start, turn.End, err)
		}

		d.log.Debug("turn transcribed", logger.Fields(
			logger.FieldSpeaker, turn.Speaker,
			"start", turn.Start,
			"end", turn.End,
		))
		segments = append(segments, protocol.Segment{
			Start:   turn.Start,
			End:     turn.End,
			Speaker: turn.Speaker,
			Text:    text,
		})
	}
	return segments, nil
}

// persistProtocol normalizes the assembled segments and writes the two
// protocol renderings. protocol.json is written last of the model
// driven artifacts and marks the job complete.
func (d *Driver) persistProtocol(store job.Store, segments []protocol.Segment) (string, error) {
	normalized := protocol.Normalize(segments)

	var text strings.Builder
	if err := protocol.WriteText(&text, normalized); err != nil {
		return "", errors.Internal(err)
	}
	if err := store.Save(job.ArtifactProtocolText, []byte(text.String())); err != nil {
		return "", errors.Internal(err)
	}

	data, err := json.MarshalIndent(normalized, "", "    ")
	if err != nil {
		return "", errors.Internal(err)
	}
	if err := store.Save(job.ArtifactProtocol, data); err != nil {
		return "", errors.Internal(err)
	}
	return store.Path(job.ArtifactProtocol), nil
}

// segmentID derives the per-turn artifact identifier from the turn
// bounds, e.g. (12.5, 17.25) -> "12_50_17_25". Collision resistant
// within one job because no two turns share identical bounds.
func segmentID(start, end float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f_%.2f", start, end), ".", "_")
}
