package media

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsenselab/protokoll/process"
)

const (
	ffmpegBinary  = "ffmpeg"
	ffprobeBinary = "ffprobe"

	defaultToolTimeout = 10 * time.Minute
)

// FFmpeg executes audio operations through the ffmpeg/ffprobe binaries.
type FFmpeg struct {
	timeout time.Duration
}

// NewFFmpeg creates an FFmpeg wrapper. A zero timeout falls back to a
// generous default suitable for long recordings.
func NewFFmpeg(timeout time.Duration) *FFmpeg {
	if timeout == 0 {
		timeout = defaultToolTimeout
	}
	return &FFmpeg{timeout: timeout}
}

// IsAvailable reports whether both ffmpeg and ffprobe resolve via PATH.
func (f *FFmpeg) IsAvailable(_ context.Context) bool {
	return process.Available(ffmpegBinary) && process.Available(ffprobeBinary)
}

// ConvertToWAV converts src to a mono 16kHz waveform file at dst,
// overwriting any existing file.
func (f *FFmpeg) ConvertToWAV(ctx context.Context, src, dst string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	result, err := process.Run(ctx, process.Command{
		Binary: ffmpegBinary,
		Args:   convertArgs(src, dst),
	})
	if err != nil {
		return fmt.Errorf("convert %s to wav: %w: %s", src, err, tail(result))
	}
	return nil
}

// convertArgs builds the ffmpeg argument list for WAV conversion.
// ffmpeg -y -i src -ac 1 -ar 16000 -f wav dst
func convertArgs(src, dst string) []string {
	return []string{
		"-y", "-i", src,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		dst,
	}
}

// tail returns the last part of a failed tool's stderr for error messages.
func tail(result *process.Result) string {
	if result == nil {
		return ""
	}
	s := string(result.Stderr)
	const max = 400
	if len(s) > max {
		s = "..." + s[len(s)-max:]
	}
	return s
}
