package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Plan variants. They differ only in book naming and column geometry.
const (
	VariantAbbreviated = "abbreviated"
	VariantFull        = "full"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
	Send          bool
	APIKey        string
	OrgID         string
	Dataset       string
	FlushInterval time.Duration
}

// PlanConfig selects the calendar.
type PlanConfig struct {
	Start   time.Time
	Days    int
	Variant string
}

// LayoutConfig is page geometry in points.
type LayoutConfig struct {
	PageWidth        float64
	PageHeight       float64
	Margin           float64
	RowHeight        float64
	MaxRowsPerColumn int
	ColumnsPerPage   int
	DateWidth        float64
	ReadingWidth     float64
	FontSize         int
}

// OutputConfig says where the artifact goes and what to check afterwards.
type OutputConfig struct {
	Path         string // local path or s3://bucket/key
	Verify       bool
	MinTextChars int
	PreviewPath  string
	PreviewDPI   int
}

// StatusConfig enables run status records in Redis when RedisURL is set.
type StatusConfig struct {
	RedisURL string
	TTL      time.Duration
}

// MetricsConfig enables a Prometheus textfile when File is set.
type MetricsConfig struct {
	File string
}

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig
	Axiom   AxiomConfig
	Plan    PlanConfig
	Layout  LayoutConfig
	Output  OutputConfig
	Status  StatusConfig
	Metrics MetricsConfig
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) Config {
	// missing .env is the normal case
	_ = godotenv.Load(envFiles...)
	return FromEnv()
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", ""),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "10"), 10),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "3"), 3),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	baseDataset := getEnv("AXIOM_DATASET", "dev")
	cfg.Axiom = AxiomConfig{
		Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
		APIKey:        getEnv("AXIOM_API_KEY", ""),
		OrgID:         getEnv("AXIOM_ORG_ID", ""),
		Dataset:       baseDataset + "_readingplan",
		FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "5s"), 5*time.Second),
	}

	cfg.Plan = PlanConfig{
		Start:   parseDate(getEnv("PLAN_START", "2026-01-01"), time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)),
		Days:    parseInt(getEnv("PLAN_DAYS", "365"), 365),
		Variant: strings.ToLower(getEnv("PLAN_VARIANT", VariantAbbreviated)),
	}

	cfg.Layout = VariantLayout(cfg.Plan.Variant)
	cfg.Layout.PageWidth = parseFloat(getEnv("PAGE_WIDTH", ""), cfg.Layout.PageWidth)
	cfg.Layout.PageHeight = parseFloat(getEnv("PAGE_HEIGHT", ""), cfg.Layout.PageHeight)
	cfg.Layout.Margin = parseFloat(getEnv("PAGE_MARGIN", ""), cfg.Layout.Margin)
	cfg.Layout.RowHeight = parseFloat(getEnv("ROW_HEIGHT", ""), cfg.Layout.RowHeight)
	cfg.Layout.MaxRowsPerColumn = parseInt(getEnv("MAX_ROWS_PER_COLUMN", ""), cfg.Layout.MaxRowsPerColumn)
	cfg.Layout.ColumnsPerPage = parseInt(getEnv("COLUMNS_PER_PAGE", ""), cfg.Layout.ColumnsPerPage)
	cfg.Layout.FontSize = parseInt(getEnv("FONT_SIZE", ""), cfg.Layout.FontSize)

	cfg.Output = OutputConfig{
		Path:         getEnv("OUTPUT_PATH", DefaultOutputName(cfg.Plan.Start)),
		Verify:       parseBool(getEnv("VERIFY_OUTPUT", "true")),
		MinTextChars: parseInt(getEnv("VERIFY_MIN_TEXT_CHARS", "300"), 300),
		PreviewPath:  getEnv("PREVIEW_PATH", ""),
		PreviewDPI:   parseInt(getEnv("PREVIEW_DPI", "96"), 96),
	}

	cfg.Status = StatusConfig{
		RedisURL: getEnv("REDIS_URL", ""),
		TTL:      parseDuration(getEnv("STATUS_TTL", "168h"), 7*24*time.Hour),
	}

	cfg.Metrics = MetricsConfig{
		File: getEnv("METRICS_FILE", ""),
	}

	return cfg
}

// VariantLayout returns the column geometry of a plan variant on landscape
// Letter. Unknown variants get the abbreviated layout.
func VariantLayout(variant string) LayoutConfig {
	l := LayoutConfig{
		PageWidth:        792,
		PageHeight:       612,
		Margin:           24,
		RowHeight:        12,
		MaxRowsPerColumn: 39,
		ColumnsPerPage:   5,
		DateWidth:        30,
		ReadingWidth:     100,
		FontSize:         6,
	}
	if variant == VariantFull {
		l.ColumnsPerPage = 4
		l.DateWidth = 35
		l.ReadingWidth = 140
	}
	return l
}

// DefaultOutputName is the file name used when no output path is given.
func DefaultOutputName(start time.Time) string {
	return fmt.Sprintf("%d_Bible_Reading_Plan.pdf", start.Year())
}

// Validate reports configuration the generator cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Plan.Days < 1 {
		errs = append(errs, fmt.Errorf("PLAN_DAYS must be >= 1, got %d", c.Plan.Days))
	}
	if c.Plan.Variant != VariantAbbreviated && c.Plan.Variant != VariantFull {
		errs = append(errs, fmt.Errorf("PLAN_VARIANT must be %q or %q, got %q", VariantAbbreviated, VariantFull, c.Plan.Variant))
	}
	if c.Layout.ColumnsPerPage < 1 {
		errs = append(errs, fmt.Errorf("COLUMNS_PER_PAGE must be >= 1, got %d", c.Layout.ColumnsPerPage))
	}
	if c.Layout.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("ROW_HEIGHT must be > 0, got %g", c.Layout.RowHeight))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("OUTPUT_PATH must not be empty"))
	}
	return errors.Join(errs...)
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func parseDate(s string, def time.Time) time.Time {
	if s == "" {
		return def
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return def
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
