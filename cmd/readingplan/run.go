package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cfgpkg "github.com/local/readingplan/internal/config"
	"github.com/local/readingplan/internal/generator"
	"github.com/local/readingplan/internal/layout"
	logpkg "github.com/local/readingplan/internal/logger"
	"github.com/local/readingplan/internal/metrics"
	"github.com/local/readingplan/internal/preview"
	"github.com/local/readingplan/internal/render"
	"github.com/local/readingplan/internal/storage"
	"github.com/local/readingplan/internal/store"
	"github.com/local/readingplan/internal/verify"
)

type flags struct {
	envFile  string
	output   string
	start    string
	days     int
	variant  string
	preview  string
	noVerify bool
}

func (f *flags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.envFile, "env-file", ".env", "optional dotenv file to load before reading the environment")
	pf.StringVar(&f.start, "start", "", "first day of the plan (YYYY-MM-DD)")
	pf.IntVar(&f.days, "days", 0, "number of days in the plan")
	pf.StringVar(&f.variant, "variant", "", `book naming and column layout: "abbreviated" or "full"`)

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output path or s3://bucket/key")
	fl.StringVar(&f.preview, "preview", "", "also write a JPEG of the first page here")
	fl.BoolVar(&f.noVerify, "no-verify", false, "skip checking the rendered PDF")
}

// loadConfig reads env configuration and applies the flags the user set.
func loadConfig(cmd *cobra.Command, f *flags) (cfgpkg.Config, error) {
	cfg := cfgpkg.Load(f.envFile)
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("variant") {
		cfg.Plan.Variant = f.variant
		// the column geometry follows the variant unless set explicitly
		if os.Getenv("COLUMNS_PER_PAGE") == "" {
			v := cfgpkg.VariantLayout(f.variant)
			cfg.Layout.ColumnsPerPage = v.ColumnsPerPage
			cfg.Layout.DateWidth = v.DateWidth
			cfg.Layout.ReadingWidth = v.ReadingWidth
		}
	}
	if changed("start") {
		t, err := time.Parse(time.DateOnly, f.start)
		if err != nil {
			return cfg, fmt.Errorf("invalid --start %q: %w", f.start, err)
		}
		if os.Getenv("OUTPUT_PATH") == "" {
			cfg.Output.Path = cfgpkg.DefaultOutputName(t)
		}
		cfg.Plan.Start = t
	}
	if changed("days") {
		cfg.Plan.Days = f.days
	}
	if changed("output") {
		cfg.Output.Path = f.output
	}
	if changed("preview") {
		cfg.Output.PreviewPath = f.preview
	}
	if changed("no-verify") {
		cfg.Output.Verify = !f.noVerify
	}
	return cfg, cfg.Validate()
}

func geometry(cfg cfgpkg.Config) layout.Geometry {
	l := cfg.Layout
	return layout.Geometry{
		PageWidth:        l.PageWidth,
		PageHeight:       l.PageHeight,
		Margin:           l.Margin,
		RowHeight:        l.RowHeight,
		MaxRowsPerColumn: l.MaxRowsPerColumn,
		ColumnsPerPage:   l.ColumnsPerPage,
		DateWidth:        l.DateWidth,
		ReadingWidth:     l.ReadingWidth,
		FontSize:         l.FontSize,
	}
}

func options(cfg cfgpkg.Config) (generator.Options, error) {
	v, err := generator.LookupVariant(cfg.Plan.Variant)
	if err != nil {
		return generator.Options{}, err
	}
	return generator.Options{
		Start:    cfg.Plan.Start,
		Days:     cfg.Plan.Days,
		Variant:  v,
		Geometry: geometry(cfg),
	}, nil
}

func initLogging(cfg cfgpkg.Config) error {
	return logpkg.Init(logpkg.Options{
		Level:        cfg.Logging.Level,
		Pretty:       cfg.Logging.Pretty,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		MaxAgeDays:   cfg.Logging.MaxAgeDays,
		Compress:     cfg.Logging.Compress,
		SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
		AxiomAPIKey:  cfg.Axiom.APIKey,
		AxiomOrgID:   cfg.Axiom.OrgID,
		AxiomDataset: cfg.Axiom.Dataset,
		AxiomFlush:   cfg.Axiom.FlushInterval,
	})
}

func runGenerate(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if lerr := initLogging(cfg); lerr != nil {
		return fmt.Errorf("init logging: %w", lerr)
	}
	defer logpkg.Close()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	geom := geometry(cfg)
	pdf, err := render.NewPDF(geom, render.DefaultStyle())
	if err != nil {
		log.Error().Err(err).Msg("missing rendering dependency")
		return err
	}

	opts, err := options(cfg)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.New()
	deps := generator.Dependencies{
		Renderer: pdf,
		Metrics:  reg,
		Out:      cmd.OutOrStdout(),
		Preview: func(pdfPath, outPath string) error {
			return preview.WriteFirstPage(pdfPath, outPath, cfg.Output.PreviewDPI)
		},
	}
	if cfg.Output.Verify {
		deps.Verify = func(path string, wantPages int, expect []string) error {
			_, err := verify.Check(path, verify.Options{WantPages: wantPages, Threshold: cfg.Output.MinTextChars, Expect: expect, Config: pdf.Configuration()})
			return err
		}
	}
	if cfg.Status.RedisURL != "" {
		rs, err := store.NewRedisStatus(ctx, cfg.Status.RedisURL, cfg.Status.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("run status disabled")
		} else {
			defer rs.Close()
			deps.Status = rs
		}
	}
	if storage.IsS3(cfg.Output.Path) {
		s3c, err := storage.NewS3Client(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to init s3 client")
			return err
		}
		deps.Uploader = s3c
	}

	res, runErr := generator.New(opts, generator.Output{Path: cfg.Output.Path, PreviewPath: cfg.Output.PreviewPath}, deps).Run(ctx)

	if cfg.Metrics.File != "" {
		if err := reg.WriteTextfile(cfg.Metrics.File); err != nil {
			log.Warn().Err(err).Str("file", cfg.Metrics.File).Msg("failed to write metrics")
		}
	}
	if runErr != nil {
		var be *render.BuildError
		if errors.As(runErr, &be) {
			log.Error().Str("stage", be.Stage).Err(be.Err).Msg("error while building PDF")
		}
		return runErr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "PDF created at: %s\n", res.Output)
	if deps.Status != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Run ID: %s\n", res.RunID)
	}
	return nil
}

func newScheduleCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the daily readings as tab-separated text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			opts, err := options(cfg)
			if err != nil {
				return err
			}
			plan, err := generator.BuildPlan(opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range generator.Rows(plan) {
				fmt.Fprintf(w, "%s\t%s\n", r.Date, r.Reading)
			}
			return nil
		},
	}
}
