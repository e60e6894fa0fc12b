package protocol

// Segment represents a speaker-attributed time range with transcript text.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Speaker is the diarization speaker label. It is opaque and only
	// meaningful within one job's result.
	Speaker string `json:"speaker"`
	// Text is the transcribed text for this segment. May be empty when
	// the interval is silence.
	Text string `json:"text"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}
