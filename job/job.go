package job

import (
	"path/filepath"
	"time"

	"github.com/skillsenselab/protokoll/util"
)

// Meta is the source metadata persisted as meta_info.json. It is
// overwritten on every run, never cached.
type Meta struct {
	URL         string `json:"URL"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
}

// DirName derives the job directory name from the source title and the
// submission date: {YYYYMMDD}_{sanitized title}. Re-submitting the same
// source on the same day resolves to the same directory and resumes
// from whatever artifacts already exist.
func DirName(title string, now time.Time) string {
	return now.Format("20060102") + "_" + util.SanitizeTitle(title)
}

// Dir resolves the absolute job directory under outputRoot.
func Dir(outputRoot, title string, now time.Time) string {
	return filepath.Join(outputRoot, DirName(title, now))
}
