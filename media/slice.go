package media

import (
	"context"
	"fmt"
	"os"

	"github.com/skillsenselab/protokoll/process"
)

// ClampInterval clamps [start, end) to the asset bounds [0, duration].
// It returns an error when the asset cannot contain any part of the
// interval: the clamped interval would be empty or inverted.
func ClampInterval(start, end, duration float64) (float64, float64, error) {
	if start < 0 {
		start = 0
	}
	if end > duration {
		end = duration
	}
	if end <= start {
		return 0, 0, fmt.Errorf("interval [%f, %f) empty after clamping to %f", start, end, duration)
	}
	return start, end, nil
}

// Slice extracts the interval [start, end) seconds from src into dst as
// WAV. Offsets are clamped to the asset bounds first; a missing source
// asset or an interval fully outside the asset is an error.
func (f *FFmpeg) Slice(ctx context.Context, src, dst string, start, end float64) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("audio asset %s: %w", src, err)
	}

	duration, err := f.Duration(ctx, src)
	if err != nil {
		return err
	}
	start, end, err = ClampInterval(start, end, duration)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	result, err := process.Run(ctx, process.Command{
		Binary: ffmpegBinary,
		Args:   sliceArgs(src, dst, start, end),
	})
	if err != nil {
		return fmt.Errorf("slice %s [%f, %f): %w: %s", src, start, end, err, tail(result))
	}
	return nil
}

// sliceArgs builds the ffmpeg argument list for cutting a slice.
// ffmpeg -y -ss start -to end -i src -c copy dst
func sliceArgs(src, dst string, start, end float64) []string {
	return []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", start),
		"-to", fmt.Sprintf("%.3f", end),
		"-i", src,
		"-c", "copy",
		dst,
	}
}
