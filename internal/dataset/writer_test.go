package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flight-footprint/atlas/internal/models"
)

func sampleRecords() []models.AirportRecord {
	return []models.AirportRecord{
		{Name: "Heathrow International Airport", City: "London", Country: "United Kingdom", IATACode: "LHR", Latitude: 51.4706, Longitude: -0.461941, PopularityScore: 172},
		{Name: "Zürich Airport & Terminal", City: "Zürich", Country: "Switzerland", IATACode: "ZRH", Latitude: 47.464699, Longitude: 8.54917, PopularityScore: 10},
	}
}

func TestBackupPath(t *testing.T) {
	tests := map[string]string{
		"public/data/airports.json": "public/data/airports.backup.json",
		"out/data":                  "out/data.backup.json",
		"a.b/c.json":                "a.b/c.backup.json",
	}
	for in, want := range tests {
		if got := BackupPath(in); got != want {
			t.Errorf("BackupPath(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestWrite_FreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "data", "airports.json")

	result, err := Write(path, sampleRecords())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.BackupPath != "" {
		t.Errorf("Expected no backup, got %s", result.BackupPath)
	}
	if _, err := os.Stat(BackupPath(path)); !os.IsNotExist(err) {
		t.Error("Expected no backup file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if int64(len(data)) != result.Bytes || result.Records != 2 {
		t.Errorf("Unexpected result %+v for %d bytes", result, len(data))
	}
	text := string(data)
	if !strings.HasPrefix(text, "[\n  {\n    \"name\": \"Heathrow International Airport\"") {
		t.Errorf("Expected two-space indented array, got:\n%s", text[:60])
	}
	if !strings.Contains(text, "Zürich Airport & Terminal") {
		t.Error("Expected non-ASCII and '&' written literally")
	}

	decoded, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(decoded) != 2 || decoded[0] != sampleRecords()[0] {
		t.Errorf("Unexpected decoded records %+v", decoded)
	}
}

func TestWrite_BacksUpExactPriorBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "airports.json")
	prior := []byte("[{\"name\": \"old\"}]   \n// not even valid JSON afterwards")
	if err := os.WriteFile(path, prior, 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Write(path, sampleRecords())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.BackupPath != filepath.Join(dir, "airports.backup.json") {
		t.Errorf("Unexpected backup path %s", result.BackupPath)
	}

	backup, err := os.ReadFile(result.BackupPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backup, prior) {
		t.Errorf("Expected backup to hold prior bytes, got %q", backup)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected only dataset and backup, found %d entries", len(entries))
	}
}

func TestWrite_EmptyRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.json")
	if _, err := Write(path, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty array, got %q", data)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.csv")
	if err := WriteCSV(path, sampleRecords()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,city,country,iata_code,latitude,longitude,popularity_score" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Heathrow International Airport,London,United Kingdom,LHR,") {
		t.Errorf("Unexpected first row %q", lines[1])
	}
}

func TestPreview(t *testing.T) {
	out, err := Preview(sampleRecords(), 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	decoded, err := Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || decoded[0].IATACode != "LHR" {
		t.Errorf("Expected only LHR, got %+v", decoded)
	}

	out, _ = Preview(sampleRecords(), 0)
	decoded, _ = Decode(bytes.NewReader(out))
	if len(decoded) != 2 {
		t.Errorf("Expected all records without a limit, got %d", len(decoded))
	}
}
