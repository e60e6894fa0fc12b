package pipeline

import (
	"context"
	"time"

	"github.com/skillsenselab/protokoll/acquisition"
	"github.com/skillsenselab/protokoll/diarization"
	"github.com/skillsenselab/protokoll/job"
	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/observability"
	"github.com/skillsenselab/protokoll/transcription"
)

// AudioTool is the subset of media operations the pipeline needs:
// container-to-WAV conversion and time-interval extraction.
// *media.FFmpeg satisfies it.
type AudioTool interface {
	ConvertToWAV(ctx context.Context, src, dst string) error
	Slice(ctx context.Context, src, dst string, start, end float64) error
}

// StoreOpener opens the artifact store for a job directory.
type StoreOpener func(dir string) (job.Store, error)

// Options tunes a Driver. Zero values get sensible defaults.
type Options struct {
	// OutputRoot is the directory under which job directories are created.
	OutputRoot string
	// Language hints the transcription backend (e.g. "de"). Optional.
	Language string
	// OpenStore opens the per-job artifact store. Defaults to the
	// filesystem store. Tests inject an in-memory store here.
	OpenStore StoreOpener
	// Now supplies the current time for job directory naming.
	// Defaults to time.Now.
	Now func() time.Time
	// Logger is the pipeline logger. Defaults to the global logger with
	// a pipeline component field.
	Logger *logger.Logger
}

// Driver sequences the pipeline stages for one job at a time.
type Driver struct {
	acquirer    acquisition.Provider
	diarizer    diarization.Provider
	transcriber transcription.Provider
	audio       AudioTool

	outputRoot string
	language   string
	openStore  StoreOpener
	now        func() time.Time
	log        *logger.Logger
}

// NewDriver creates a pipeline driver over the given collaborators.
func NewDriver(acq acquisition.Provider, dia diarization.Provider, tr transcription.Provider, audio AudioTool, opts Options) *Driver {
	if opts.OpenStore == nil {
		opts.OpenStore = func(dir string) (job.Store, error) {
			return job.NewFSStore(dir)
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.WithComponent("pipeline")
	}
	return &Driver{
		acquirer:    acq,
		diarizer:    dia,
		transcriber: tr,
		audio:       audio,
		outputRoot:  opts.OutputRoot,
		language:    opts.Language,
		openStore:   opts.OpenStore,
		now:         opts.Now,
		log:         opts.Logger,
	}
}

// Run executes the pipeline for one source URL. It never returns an
// error directly; failures are reported in the RunResult so the task
// queue worker can record them verbatim. The driver does not retry.
func (d *Driver) Run(ctx context.Context, url string) RunResult {
	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.End()
	observability.SetSpanAttribute(ctx, "job.url", url)

	log := d.log.WithFields(logger.Fields(logger.FieldURL, url))
	log.Info("pipeline starting", logger.Fields(logger.FieldStage, string(StateAcquiring)))

	store, err := d.resolve(ctx, url)
	if err != nil {
		return d.fail(ctx, log, StateAcquiring, "", err)
	}
	jobDir := store.Dir()
	log = log.WithFields(logger.Fields(logger.FieldJobDir, jobDir))

	// protocol.json existence is the outermost idempotency gate: a
	// finished job returns success before any download or model call,
	// even if the diarization cache is gone.
	if store.Has(job.ArtifactProtocol) {
		log.Info("protocol already exists, skipping run")
		return RunResult{
			Status:       StatusSuccess,
			JobDir:       jobDir,
			ProtocolPath: store.Path(job.ArtifactProtocol),
		}
	}

	acq := d.fetchAudio(ctx, store, url)
	if acq.Err != nil {
		// Download or conversion failure leaves the job directory in
		// place for inspection; the run is a hard stop.
		return d.fail(ctx, log, StateAcquiring, jobDir, acq.Err)
	}
	log.Info("audio ready", logger.Fields(logger.FieldStatus, string(acq.Status)))

	log.Info("pipeline advancing", logger.Fields(logger.FieldStage, string(StateDiarizing)))
	dia := d.diarize(ctx, store, acq.Value)
	if dia.Err != nil {
		return d.fail(ctx, log, StateDiarizing, jobDir, dia.Err)
	}
	log.Info("diarization ready", logger.Fields(
		logger.FieldStatus, string(dia.Status),
		"turns", len(dia.Value),
	))

	log.Info("pipeline advancing", logger.Fields(logger.FieldStage, string(StateTranscribing)))
	segments, err := d.assemble(ctx, store, acq.Value, dia.Value)
	if err != nil {
		return d.fail(ctx, log, StateTranscribing, jobDir, err)
	}

	protocolPath, err := d.persistProtocol(store, segments)
	if err != nil {
		return d.fail(ctx, log, StateTranscribing, jobDir, err)
	}

	log.Info("pipeline done", logger.Fields(
		logger.FieldStage, string(StateDone),
		"segments", len(segments),
	))
	return RunResult{
		Status:       StatusSuccess,
		JobDir:       jobDir,
		ProtocolPath: protocolPath,
	}
}

func (d *Driver) fail(ctx context.Context, log *logger.Logger, state State, jobDir string, err error) RunResult {
	observability.SetSpanError(ctx, err)
	log.WithError(err).Error("pipeline failed", logger.Fields(logger.FieldStage, string(state)))
	return RunResult{
		Status: StatusFailure,
		JobDir: jobDir,
		Error:  err.Error(),
	}
}
