// Package acquisition defines the provider interface and common types
// for fetching audio from remote video sources.
//
// A backend resolves a video URL to its metadata (title, description)
// and downloads the audio track to a local file. Metadata resolution is
// separated from the download so callers can derive the job directory
// from the title before any bytes are fetched.
//
// # Backends
//
//   - acquisition/ytdlp: yt-dlp subprocess wrapper
package acquisition
