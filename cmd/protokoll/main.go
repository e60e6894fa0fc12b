// protokoll turns video URLs into speaker-attributed transcripts
// without going through the daemon or the task queue.
//
//	protokoll -output ./protocols https://www.youtube.com/watch?v=...
//	protokoll -file urls.txt
//
// Re-running with the same URL on the same day resumes from the
// artifacts already on disk.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/skillsenselab/protokoll/acquisition"
	"github.com/skillsenselab/protokoll/acquisition/ytdlp"
	"github.com/skillsenselab/protokoll/config"
	"github.com/skillsenselab/protokoll/diarization"
	"github.com/skillsenselab/protokoll/diarization/pyannote"
	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/media"
	"github.com/skillsenselab/protokoll/pipeline"
	"github.com/skillsenselab/protokoll/transcription"
	"github.com/skillsenselab/protokoll/transcription/whisper"
)

const serviceName = "protokoll"

func main() {
	configFile := flag.String("config", "", "path to config file")
	output := flag.String("output", "", "output root directory (overrides config)")
	language := flag.String("language", "", "transcription language (overrides config)")
	urlFile := flag.String("file", "", "file with one video URL per line")
	flag.Usage = usage
	flag.Parse()

	urls := flag.Args()
	if *urlFile != "" {
		fromFile, err := readURLs(*urlFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		usage()
		os.Exit(2)
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Pipeline.OutputRoot = *output
	}
	if *language != "" {
		cfg.Pipeline.Language = *language
	}

	logger.Init(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, err := buildDriver(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, url := range urls {
		res := driver.Run(ctx, url)
		if res.Status != pipeline.StatusSuccess {
			fmt.Fprintf(os.Stderr, "%s: %s\n", url, res.Error)
			failed++
			continue
		}
		fmt.Println(res.ProtocolPath)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// readURLs reads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return urls, nil
}

func buildDriver(cfg *config.Config) (*pipeline.Driver, error) {
	acqReg := acquisition.NewRegistry()
	acqReg.RegisterFactory(ytdlp.ProviderName, ytdlp.Factory())
	acquirer, err := acqReg.Create(cfg.Acquisition.Provider, cfg.Acquisition.Options)
	if err != nil {
		return nil, fmt.Errorf("acquisition provider: %w", err)
	}

	diaReg := diarization.NewRegistry()
	diaReg.RegisterFactory(pyannote.ProviderName, pyannote.Factory())
	diarizer, err := diaReg.Create(cfg.Diarization.Provider, cfg.Diarization.Options)
	if err != nil {
		return nil, fmt.Errorf("diarization provider: %w", err)
	}

	trReg := transcription.NewRegistry()
	trReg.RegisterFactory(whisper.ProviderName, whisper.Factory())
	transcriber, err := trReg.Create(cfg.Transcription.Provider, cfg.Transcription.Options)
	if err != nil {
		return nil, fmt.Errorf("transcription provider: %w", err)
	}

	ffmpeg := media.NewFFmpeg(cfg.Pipeline.FFmpegTimeout)

	return pipeline.NewDriver(acquirer, diarizer, transcriber, ffmpeg, pipeline.Options{
		OutputRoot: cfg.Pipeline.OutputRoot,
		Language:   cfg.Pipeline.Language,
	}), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <video-url>...\n\nFlags:\n", serviceName)
	flag.PrintDefaults()
}
