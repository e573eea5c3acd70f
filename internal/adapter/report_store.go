package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

const (
	reportFileName = "report.json"
	lockFileName   = ".report.lock"
)

// ReportStore persists run reports.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error)
	LoadReport(ctx context.Context, dir m.Path) (m.RunReport, error)
}

// LocalReportStore writes reports as JSON into a directory. Writers and
// readers take a file lock so parallel CI shards sharing a directory never
// see a half-written report.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report to dir/report.json and returns the file path.
func (s *LocalReportStore) SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), reportFileName)

	lock := flock.New(filepath.Join(string(dir), lockFileName))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock reports dir %s: %w", dir, err)
	}

	defer func() { _ = lock.Unlock() }()

	if err := atomicWrite(target, data); err != nil {
		return "", err
	}

	return m.Path(target), nil
}

// LoadReport reads dir/report.json.
func (s *LocalReportStore) LoadReport(ctx context.Context, dir m.Path) (m.RunReport, error) {
	if err := ctx.Err(); err != nil {
		return m.RunReport{}, err
	}

	lock := flock.New(filepath.Join(string(dir), lockFileName))
	if err := lock.RLock(); err != nil {
		return m.RunReport{}, fmt.Errorf("lock reports dir %s: %w", dir, err)
	}

	defer func() { _ = lock.Unlock() }()

	// #nosec G304 - reports dir is configured by the user
	data, err := os.ReadFile(filepath.Join(string(dir), reportFileName))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

// atomicWrite writes through a temp file in the same directory and renames
// it over path.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-report-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename report into place: %w", err)
	}

	return nil
}
