// protokolld is the protokoll daemon: it serves the job API and runs
// queue workers that turn submitted video URLs into speaker-attributed
// transcripts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/protokoll/acquisition"
	"github.com/skillsenselab/protokoll/acquisition/ytdlp"
	"github.com/skillsenselab/protokoll/config"
	"github.com/skillsenselab/protokoll/diarization"
	"github.com/skillsenselab/protokoll/diarization/pyannote"
	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/media"
	"github.com/skillsenselab/protokoll/observability"
	"github.com/skillsenselab/protokoll/pipeline"
	"github.com/skillsenselab/protokoll/queue"
	"github.com/skillsenselab/protokoll/redis"
	"github.com/skillsenselab/protokoll/server"
	"github.com/skillsenselab/protokoll/server/endpoint"
	"github.com/skillsenselab/protokoll/transcription"
	"github.com/skillsenselab/protokoll/transcription/whisper"
	"github.com/skillsenselab/protokoll/version"
)

const serviceName = "protokolld"

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
			SampleRate:     cfg.Observability.SampleRate,
		})
		if err != nil {
			log.Fatal("Failed to init tracer", map[string]interface{}{"error": err.Error()})
		}
		defer shutdown(tp.Shutdown, "tracer", log)

		mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
		})
		if err != nil {
			log.Fatal("Failed to init meter", map[string]interface{}{"error": err.Error()})
		}
		defer shutdown(mp.Shutdown, "meter", log)

		metrics, err = observability.NewMetrics(mp.Meter(cfg.Name))
		if err != nil {
			log.Fatal("Failed to create metrics", map[string]interface{}{"error": err.Error()})
		}
	}

	if !cfg.Redis.Enabled {
		log.Fatal("redis.enabled must be true: the daemon needs the task queue")
	}
	client, err := redis.New(cfg.Redis, logger.GetGlobalLogger())
	if err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}
	defer client.Close()

	acquirer, diarizer, transcriber, err := buildProviders(cfg)
	if err != nil {
		log.Fatal("Failed to build providers", map[string]interface{}{"error": err.Error()})
	}
	ffmpeg := media.NewFFmpeg(cfg.Pipeline.FFmpegTimeout)

	driver := pipeline.NewDriver(acquirer, diarizer, transcriber, ffmpeg, pipeline.Options{
		OutputRoot: cfg.Pipeline.OutputRoot,
		Language:   cfg.Pipeline.Language,
	})

	q := queue.New(client, queue.Options{})
	for i := 0; i < cfg.Workers; i++ {
		w := queue.NewWorker(q, driver, queue.WorkerOptions{Metrics: metrics})
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("Worker stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}
	log.Info("Workers started", map[string]interface{}{"count": cfg.Workers})

	checker := healthChecker(
		probe{"redis", client.IsAvailable},
		probe{acquirer.Name(), acquirer.IsAvailable},
		probe{diarizer.Name(), diarizer.IsAvailable},
		probe{transcriber.Name(), transcriber.IsAvailable},
		probe{"ffmpeg", ffmpeg.IsAvailable},
	)

	srv := server.New(cfg.Server, logger.GetGlobalLogger())
	srv.ApplyDefaults(cfg.Name, version.Version, checker)
	server.NewJobsHandler(q, logger.GetGlobalLogger()).Register(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", map[string]interface{}{"error": err.Error()})
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	if err := srv.Stop(context.Background()); err != nil {
		log.Error("Server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}

// buildProviders creates the configured acquisition, diarization, and
// transcription backends from their registries.
func buildProviders(cfg *config.Config) (acquisition.Provider, diarization.Provider, transcription.Provider, error) {
	acqReg := acquisition.NewRegistry()
	acqReg.RegisterFactory(ytdlp.ProviderName, ytdlp.Factory())
	acquirer, err := acqReg.Create(cfg.Acquisition.Provider, cfg.Acquisition.Options)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("acquisition provider: %w", err)
	}

	diaReg := diarization.NewRegistry()
	diaReg.RegisterFactory(pyannote.ProviderName, pyannote.Factory())
	diarizer, err := diaReg.Create(cfg.Diarization.Provider, cfg.Diarization.Options)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("diarization provider: %w", err)
	}

	trReg := transcription.NewRegistry()
	trReg.RegisterFactory(whisper.ProviderName, whisper.Factory())
	transcriber, err := trReg.Create(cfg.Transcription.Provider, cfg.Transcription.Options)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("transcription provider: %w", err)
	}

	return acquirer, diarizer, transcriber, nil
}

// probe pairs a component name with its availability check.
type probe struct {
	name      string
	available func(ctx context.Context) bool
}

func healthChecker(probes ...probe) endpoint.HealthChecker {
	return func(ctx context.Context) []observability.Health {
		out := make([]observability.Health, 0, len(probes))
		for _, p := range probes {
			h := observability.Health{Name: p.name, Status: observability.HealthStatusUp}
			if !p.available(ctx) {
				h.Status = observability.HealthStatusDown
				h.Message = "unreachable"
			}
			out = append(out, h)
		}
		return out
	}
}

func shutdown(fn func(context.Context) error, name string, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Shutdown failed", map[string]interface{}{
			"component": name,
			"error":     err.Error(),
		})
	}
}
