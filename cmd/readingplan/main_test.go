package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/readingplan/internal/store"
)

func clearPlanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PLAN_START", "PLAN_DAYS", "PLAN_VARIANT", "OUTPUT_PATH", "COLUMNS_PER_PAGE", "VERIFY_OUTPUT", "REDIS_URL", "LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func noEnvFile(t *testing.T) string {
	return "--env-file=" + filepath.Join(t.TempDir(), "absent.env")
}

func TestScheduleCommandPrintsYear(t *testing.T) {
	clearPlanEnv(t)
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"schedule", noEnvFile(t)})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 365)
	assert.Equal(t, "Jan 01\tLAW: Gen 1-4", lines[0])
	assert.Equal(t, "Dec 31\tNEW COV: Rev 20-22", lines[364])
}

func TestScheduleCommandFlags(t *testing.T) {
	clearPlanEnv(t)
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"schedule", noEnvFile(t), "--variant", "full", "--start", "2027-02-01", "--days", "1189"})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 1189)
	assert.Equal(t, "Feb 01\tLAW: Genesis 1", lines[0])
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	clearPlanEnv(t)
	root, f := newRootCmdWithFlags()
	require.NoError(t, root.ParseFlags([]string{noEnvFile(t), "--variant", "full", "--start", "2027-01-01", "--no-verify", "-o", "x/plan.pdf"}))
	assert.Equal(t, "full", f.variant)
	assert.True(t, f.noVerify)

	cfg, err := loadConfig(root, f)
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.Plan.Variant)
	assert.Equal(t, 4, cfg.Layout.ColumnsPerPage)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Plan.Start)
	assert.Equal(t, "x/plan.pdf", cfg.Output.Path)
	assert.False(t, cfg.Output.Verify)
}

func TestLoadConfigStartRenamesDefaultOutput(t *testing.T) {
	clearPlanEnv(t)
	root, f := newRootCmdWithFlags()
	require.NoError(t, root.ParseFlags([]string{noEnvFile(t), "--start", "2030-01-01"}))

	cfg, err := loadConfig(root, f)
	require.NoError(t, err)
	assert.Equal(t, "2030_Bible_Reading_Plan.pdf", cfg.Output.Path)
}

func TestLoadConfigKeepsEnvWhenFlagsUnset(t *testing.T) {
	clearPlanEnv(t)
	t.Setenv("PLAN_DAYS", "90")
	root, f := newRootCmdWithFlags()
	require.NoError(t, root.ParseFlags([]string{noEnvFile(t)}))

	cfg, err := loadConfig(root, f)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Plan.Days)
	assert.Equal(t, "abbreviated", cfg.Plan.Variant)
	assert.True(t, cfg.Output.Verify)
}

func TestGenerateFailsWhenLoggingCannotStart(t *testing.T) {
	clearPlanEnv(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	t.Setenv("LOG_FILE", filepath.Join(blocker, "logs", "readingplan.log"))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{noEnvFile(t), "-o", filepath.Join(dir, "plan.pdf")})
	assert.ErrorContains(t, root.Execute(), "init logging")
	assert.NoFileExists(t, filepath.Join(dir, "plan.pdf"))
}

type fakeStatusReader struct {
	statuses map[string]store.Status
	closed   bool
}

func (r *fakeStatusReader) Get(_ context.Context, runID string) (store.Status, bool, error) {
	st, ok := r.statuses[runID]
	return st, ok, nil
}

func (r *fakeStatusReader) Close() error {
	r.closed = true
	return nil
}

func useFakeStatus(t *testing.T, r *fakeStatusReader) {
	t.Helper()
	prev := openStatus
	openStatus = func(context.Context, string, time.Duration) (statusReader, error) { return r, nil }
	t.Cleanup(func() { openStatus = prev })
}

func TestStatusCommandPrintsRun(t *testing.T) {
	clearPlanEnv(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	r := &fakeStatusReader{statuses: map[string]store.Status{
		"run-1": {State: store.StateSuccess, Message: "completed", Output: "plan.pdf", Days: 365, Pages: 2, Start: &start, End: &end},
	}}
	useFakeStatus(t, r)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"status", noEnvFile(t), "run-1"})
	require.NoError(t, root.Execute())

	got := out.String()
	assert.Contains(t, got, "run:\trun-1\n")
	assert.Contains(t, got, "state:\tsuccess\n")
	assert.Contains(t, got, "pages:\t2\n")
	assert.Contains(t, got, "duration:\t1.5s\n")
	assert.True(t, r.closed)
}

func TestStatusCommandErrors(t *testing.T) {
	clearPlanEnv(t)
	useFakeStatus(t, &fakeStatusReader{})

	root := newRootCmd()
	root.SetArgs([]string{"status", noEnvFile(t), "run-1"})
	assert.ErrorContains(t, root.Execute(), "REDIS_URL is not set")

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	root = newRootCmd()
	root.SetArgs([]string{"status", noEnvFile(t), "missing"})
	assert.ErrorContains(t, root.Execute(), "no status recorded for run missing")

	root = newRootCmd()
	root.SetArgs([]string{"status", noEnvFile(t)})
	assert.Error(t, root.Execute())
}

func TestRootRejectsArgsAndBadStart(t *testing.T) {
	clearPlanEnv(t)
	root := newRootCmd()
	root.SetArgs([]string{"extra"})
	assert.Error(t, root.Execute())

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"schedule", noEnvFile(t), "--start", "soon"})
	assert.ErrorContains(t, root.Execute(), "invalid --start")
}
