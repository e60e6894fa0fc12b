package diarization

// Turn is a speaker-attributed time interval without transcript text,
// the diarization model's raw output unit.
type Turn struct {
	// Start is the turn start time in seconds.
	Start float64 `json:"start"`
	// End is the turn end time in seconds.
	End float64 `json:"end"`
	// Speaker is the assigned speaker label. Labels are opaque and only
	// meaningful within one result; they are used for equality checks
	// and directory naming.
	Speaker string `json:"speaker"`
}

// DiarizationRequest holds parameters for a diarization call.
type DiarizationRequest struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// DiarizationResponse holds the result of a diarization call. Turns are
// kept in the order the model emitted them: start times non-decreasing,
// possibly with gaps or overlaps.
type DiarizationResponse struct {
	// Turns contains the speaker turns in emission order.
	Turns []Turn `json:"turns"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}
