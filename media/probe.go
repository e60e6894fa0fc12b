package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/skillsenselab/protokoll/process"
)

// Duration returns the duration of an audio file in seconds via ffprobe.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	result, err := process.Run(ctx, process.Command{
		Binary: ffprobeBinary,
		Args:   probeArgs(path),
	})
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w: %s", path, err, tail(result))
	}
	return parseDuration(string(result.Stdout))
}

// probeArgs builds the ffprobe argument list for duration extraction.
// ffprobe -v error -show_entries format=duration -of csv=p=0 path
func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	}
}

func parseDuration(out string) (float64, error) {
	trimmed := strings.TrimSpace(out)
	d, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", trimmed, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %f", d)
	}
	return d, nil
}
