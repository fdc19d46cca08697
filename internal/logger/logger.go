package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/axiomhq/axiom-go/axiom"
	"github.com/axiomhq/axiom-go/axiom/ingest"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const service = "readingplan"

// Options defines logger initialization parameters.
type Options struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Console output goes here; defaults to os.Stderr so stdout stays free
	// for the run summary.
	Console io.Writer

	SendToAxiom  bool
	AxiomAPIKey  string
	AxiomOrgID   string
	AxiomDataset string
	AxiomFlush   time.Duration
}

var (
	mu sync.Mutex
	ax *axiomClient
)

// Init sets up the global zerolog logger: console, optional rotating file and
// optional Axiom forwarding.
func Init(opts Options) error {
	var writers []io.Writer

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return fmt.Errorf("create logs dir: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		})
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	if opts.Pretty {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, console)
	}

	if opts.SendToAxiom && opts.AxiomAPIKey != "" {
		client, err := newAxiomClient(opts.AxiomAPIKey, opts.AxiomOrgID, opts.AxiomDataset, opts.AxiomFlush)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Axiom disabled: %v\n", err)
		} else {
			mu.Lock()
			ax = client
			mu.Unlock()
			writers = append(writers, &axiomWriter{client: client})
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().Timestamp().Str("service", service).Logger()
	return nil
}

// Close flushes the Axiom batch, if any.
func Close() {
	mu.Lock()
	c := ax
	ax = nil
	mu.Unlock()
	if c != nil {
		_ = c.Close()
	}
}

// axiomWriter forwards zerolog JSON lines to Axiom, dropping debug.
type axiomWriter struct{ client *axiomClient }

func (w *axiomWriter) Write(p []byte) (int, error) {
	var ev map[string]interface{}
	if err := json.Unmarshal(p, &ev); err != nil {
		ev = map[string]interface{}{"message": string(p), "level": "info"}
	}
	if lvl, ok := ev["level"].(string); ok && lvl == "debug" {
		return len(p), nil
	}
	if _, ok := ev[ingest.TimestampField]; !ok {
		ev[ingest.TimestampField] = time.Now()
	}
	w.client.Send(axiom.Event(ev))
	return len(p), nil
}

type axiomClient struct {
	client  *axiom.Client
	dataset string
	ch      chan axiom.Event
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func newAxiomClient(token, orgID, dataset string, flushEvery time.Duration) (*axiomClient, error) {
	if dataset == "" {
		dataset = "dev_" + service
	}
	opts := []axiom.Option{axiom.SetToken(token)}
	if orgID != "" {
		opts = append(opts, axiom.SetOrganizationID(orgID))
	}
	c, err := axiom.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	ac := &axiomClient{
		client:  c,
		dataset: dataset,
		ch:      make(chan axiom.Event, 256),
		ctx:     ctx,
		cancel:  cancel,
	}
	if flushEvery <= 0 {
		flushEvery = 5 * time.Second
	}
	ac.wg.Add(1)
	go ac.loop(flushEvery)
	return ac, nil
}

// Send enqueues ev, dropping it when the buffer is full.
func (a *axiomClient) Send(ev axiom.Event) {
	select {
	case a.ch <- ev:
	default:
	}
}

func (a *axiomClient) loop(flushEvery time.Duration) {
	defer a.wg.Done()
	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()
	batch := make([]axiom.Event, 0, 64)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		_, _ = a.client.IngestEvents(ctx, a.dataset, batch)
		cancel()
		batch = batch[:0]
	}
	for {
		select {
		case <-a.ctx.Done():
			// a one-shot run closes right after its last log line
			for {
				select {
				case ev := <-a.ch:
					batch = append(batch, ev)
				default:
					flush()
					return
				}
			}
		case <-ticker.C:
			flush()
		case ev := <-a.ch:
			batch = append(batch, ev)
			if len(batch) >= 64 {
				flush()
			}
		}
	}
}

func (a *axiomClient) Close() error {
	a.cancel()
	a.wg.Wait()
	return nil
}
