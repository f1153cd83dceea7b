package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jszwec/csvutil"

	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/models"
)

// WriteResult describes a completed dataset write.
type WriteResult struct {
	Path       string
	BackupPath string
	Bytes      int64
	Records    int
}

// BackupPath returns where the previous dataset is kept: the output path
// with its extension replaced by .backup.json.
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".backup.json"
}

// Write publishes records at path. The new content is staged in a temp
// file next to path; then any existing file is moved to BackupPath(path)
// and the temp file is renamed into place. A failed encode leaves the
// existing file untouched.
func Write(path string, records []models.AirportRecord) (WriteResult, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return WriteResult{}, err
	}

	tmp, err := stage(path, buf.Bytes())
	if err != nil {
		return WriteResult{}, err
	}

	result := WriteResult{Path: path, Bytes: int64(buf.Len()), Records: len(records)}

	if _, err := os.Stat(path); err == nil {
		backup := BackupPath(path)
		if err := os.Rename(path, backup); err != nil {
			os.Remove(tmp)
			return WriteResult{}, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		result.BackupPath = backup
		logging.Info("Backed up previous dataset", "path", path, "backup", backup)
	} else if !errors.Is(err, os.ErrNotExist) {
		os.Remove(tmp)
		return WriteResult{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return WriteResult{}, fmt.Errorf("failed to publish %s: %w", path, err)
	}

	logging.Info("Dataset written",
		"path", path,
		"records", humanize.Comma(int64(result.Records)),
		"size", humanize.Bytes(uint64(result.Bytes)),
	)
	return result, nil
}

// WriteCSV writes a CSV snapshot of records at path, replacing any previous snapshot.
func WriteCSV(path string, records []models.AirportRecord) error {
	if records == nil {
		records = []models.AirportRecord{}
	}
	data, err := csvutil.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode CSV snapshot: %w", err)
	}

	tmp, err := stage(path, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to publish %s: %w", path, err)
	}

	logging.Info("CSV snapshot written", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

// stage writes data to a temp file in the directory of path and returns its name.
func stage(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	return tmp, nil
}
