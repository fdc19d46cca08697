package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/local/readingplan/internal/layout"
	"github.com/local/readingplan/internal/metrics"
	"github.com/local/readingplan/internal/render"
	"github.com/local/readingplan/internal/storage"
	"github.com/local/readingplan/internal/store"
)

// StatusStore records the progress of a run.
type StatusStore interface {
	Set(ctx context.Context, runID string, st store.Status) error
}

// Uploader ships a finished document to object storage.
type Uploader interface {
	Upload(ctx context.Context, loc storage.Location, body io.Reader, contentType string, meta map[string]string) error
}

// VerifyFunc checks a rendered file before it is published.
type VerifyFunc func(path string, wantPages int, expect []string) error

// PreviewFunc writes an image of the first page of a rendered file.
type PreviewFunc func(pdfPath, outPath string) error

// Dependencies are the collaborators of a run. Only Renderer is required.
type Dependencies struct {
	Renderer render.Renderer
	Status   StatusStore
	Uploader Uploader
	Metrics  *metrics.Registry
	Verify   VerifyFunc
	Preview  PreviewFunc
	Out      io.Writer // progress lines for the operator
}

// Output says where the document goes.
type Output struct {
	Path        string // local path or s3://bucket/key
	PreviewPath string
}

// Result summarizes a successful run.
type Result struct {
	RunID    string
	Days     int
	Chapters int
	Pages    int
	Output   string
	Bytes    int64
	Duration time.Duration
}

// Generator runs the whole pipeline once per Run call.
type Generator struct {
	opts Options
	out  Output
	deps Dependencies
}

func New(opts Options, out Output, deps Dependencies) *Generator {
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Generator{opts: opts, out: out, deps: deps}
}

// Run builds the plan, renders it and publishes the document. Any failure
// aborts the run without leaving a partial artifact at the destination.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	logger := log.With().Str("run_id", runID).Str("variant", g.opts.Variant.Name).Logger()

	g.setStatus(ctx, runID, store.Status{State: store.StateGenerating, Message: "generating", Output: g.out.Path, Start: &start})

	res, err := g.run(ctx, runID)
	end := time.Now()
	if err != nil {
		logger.Error().Err(err).Msg("generation failed")
		g.incRun("failed")
		g.setStatus(ctx, runID, store.Status{State: store.StateFailed, Message: err.Error(), Output: g.out.Path, Start: &start, End: &end})
		return nil, err
	}
	res.Duration = end.Sub(start)
	g.incRun("success")
	g.setStatus(ctx, runID, store.Status{
		State: store.StateSuccess, Message: "completed", Output: res.Output,
		Days: res.Days, Pages: res.Pages, Start: &start, End: &end,
		Metadata: map[string]any{"bytes": res.Bytes, "chapters": res.Chapters},
	})
	logger.Info().Int("days", res.Days).Int("pages", res.Pages).Str("output", res.Output).Int64("bytes", res.Bytes).Dur("duration", res.Duration).Msg("plan generated")
	return res, nil
}

func (g *Generator) run(ctx context.Context, runID string) (*Result, error) {
	t := time.Now()
	plan, err := BuildPlan(g.opts)
	if err != nil {
		return nil, err
	}
	chapters := 0
	for _, d := range plan.Days {
		chapters += len(d.Chapters)
	}
	g.observe("plan", t)
	if g.deps.Metrics != nil {
		g.deps.Metrics.SetPlan(len(plan.Days), chapters)
	}

	t = time.Now()
	pages, story, err := Layout(plan, g.opts.Geometry)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	g.observe("layout", t)

	fmt.Fprintf(g.deps.Out, "Building PDF with %d days of readings; output: %s\n", len(plan.Days), g.out.Path)

	tmp, err := g.render(ctx, story)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	fi, err := os.Stat(tmp)
	if err != nil {
		return nil, fmt.Errorf("stat rendered file: %w", err)
	}

	if g.deps.Verify != nil {
		t = time.Now()
		var expect []string
		if len(plan.Days) > 0 {
			expect = []string{plan.Days[0].Date.Format(DateFormat)}
		}
		if err := g.deps.Verify(tmp, len(pages), expect); err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		g.observe("verify", t)
	}

	if g.out.PreviewPath != "" && g.deps.Preview != nil {
		// preview failures do not fail the run
		if err := g.deps.Preview(tmp, g.out.PreviewPath); err != nil {
			log.Warn().Err(err).Str("preview", g.out.PreviewPath).Msg("preview failed")
		}
	}

	t = time.Now()
	if err := g.publish(ctx, runID, tmp); err != nil {
		return nil, err
	}
	g.observe("publish", t)

	if g.deps.Metrics != nil {
		g.deps.Metrics.SetOutput(len(pages), fi.Size())
	}
	return &Result{
		RunID:    runID,
		Days:     len(plan.Days),
		Chapters: chapters,
		Pages:    len(pages),
		Output:   g.out.Path,
		Bytes:    fi.Size(),
	}, nil
}

// render writes the story to a temp file beside the destination (or in the
// system temp dir for remote destinations) and returns its path.
func (g *Generator) render(ctx context.Context, story []layout.Flowable) (string, error) {
	t := time.Now()
	dir := os.TempDir()
	if !storage.IsS3(g.out.Path) {
		dir = filepath.Dir(g.out.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.CreateTemp(dir, ".readingplan-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := g.deps.Renderer.Build(ctx, story, f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("render: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close rendered file: %w", err)
	}
	g.observe("render", t)
	return f.Name(), nil
}

func (g *Generator) publish(ctx context.Context, runID, tmp string) error {
	if !storage.IsS3(g.out.Path) {
		if err := os.Chmod(tmp, 0o644); err != nil {
			return fmt.Errorf("chmod output: %w", err)
		}
		if err := os.Rename(tmp, g.out.Path); err != nil {
			return fmt.Errorf("move output into place: %w", err)
		}
		return nil
	}

	if g.deps.Uploader == nil {
		return fmt.Errorf("no uploader configured for %s", g.out.Path)
	}
	loc, err := storage.ParseS3URL(g.out.Path)
	if err != nil {
		return err
	}
	f, err := os.Open(tmp)
	if err != nil {
		return fmt.Errorf("open rendered file: %w", err)
	}
	defer f.Close()
	meta := map[string]string{
		"run-id":  runID,
		"variant": g.opts.Variant.Name,
		"start":   g.opts.Start.Format(time.DateOnly),
		"days":    fmt.Sprint(g.opts.Days),
	}
	if err := g.deps.Uploader.Upload(ctx, loc, f, "application/pdf", meta); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	return nil
}

func (g *Generator) observe(stage string, since time.Time) {
	if g.deps.Metrics != nil {
		g.deps.Metrics.ObserveStage(stage, time.Since(since))
	}
}

func (g *Generator) incRun(result string) {
	if g.deps.Metrics != nil {
		g.deps.Metrics.IncRun(result)
	}
}

// setStatus is best effort.
func (g *Generator) setStatus(ctx context.Context, runID string, st store.Status) {
	if g.deps.Status == nil {
		return
	}
	if err := g.deps.Status.Set(ctx, runID, st); err != nil {
		log.Warn().Err(err).Str("run_id", runID).Str("state", st.State).Msg("status update failed")
	}
}
