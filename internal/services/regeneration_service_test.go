package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/dataset"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/metrics"
	"flight-footprint/atlas/internal/models"
	"flight-footprint/atlas/internal/providers"
)

const (
	openFlightsURL = "https://example.invalid/airports.dat"
	ourAirportsURL = "https://example.invalid/airports.csv"
	factbookURL    = "https://example.invalid/factbook"
)

const openFlightsData = `507,"London Heathrow Airport","London","United Kingdom","LHR","EGLL",51.4706,-0.461941,83,0,"E","Europe/London","airport","OurAirports"
1,"Goroka Airport","Goroka","Papua New Guinea","GKA","AYGA",-6.081689834590001,145.391998291,5282,10,"U","Pacific/Port_Moresby","airport","OurAirports"
2,"Nadzab Field","Nadzab","Papua New Guinea","LAE","AYNZ",-6.569803,146.725977,239,10,"U","Pacific/Port_Moresby","airport","OurAirports"
`

const ourAirportsData = `"id","ident","type","name","latitude_deg","longitude_deg","elevation_ft","continent","iso_country","iso_region","municipality","scheduled_service","gps_code","iata_code","local_code","home_link","wikipedia_link","keywords"
3622,"KJFK","large_airport","John F Kennedy International Airport",40.639447,-73.779317,13,"NA","US","US-NY","New York","yes","KJFK","JFK","JFK",,,
6523,"00A","heliport","Total RF Heliport",40.070985,-74.933689,11,"NA","US","US-PA","Bensalem","no","K00A",,"00A",,,
`

func init() {
	logging.SetLogger(zap.NewNop().Sugar())
}

// mapSource serves fixed bodies by location.
type mapSource struct {
	mu     sync.Mutex
	bodies map[string]string
	fail   map[string]error
	calls  int
}

func (s *mapSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if err, ok := s.fail[location]; ok {
		return nil, err
	}
	body, ok := s.bodies[location]
	if !ok {
		return nil, errors.New("no fixture for " + location)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type recordingMirror struct {
	records []models.AirportRecord
}

func (m *recordingMirror) ReplaceAll(ctx context.Context, records []models.AirportRecord) (int64, error) {
	m.records = records
	return int64(len(records)), nil
}

func newTestRegeneration(t *testing.T, src providers.ReferenceSource) *RegenerationService {
	t.Helper()
	isoPath := filepath.Join(t.TempDir(), "iso.csv")
	if err := os.WriteFile(isoPath, []byte("name,alpha-2\nUnited States,US\nUnited Kingdom,GB\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	return NewRegenerationService(
		src,
		SourceLocations{
			OpenFlights: openFlightsURL,
			OurAirports: ourAirportsURL,
			Factbook:    factbookURL,
			ISOCSVPath:  isoPath,
		},
		airports.DefaultScoringConfig(),
		nil,
		metrics.NewMetricsRegistry(prometheus.NewRegistry()),
	)
}

func fixtureSource() *mapSource {
	return &mapSource{bodies: map[string]string{
		openFlightsURL: openFlightsData,
		ourAirportsURL: ourAirportsData,
	}}
}

func TestRegenerationService_Run(t *testing.T) {
	mirror := &recordingMirror{}
	svc := newTestRegeneration(t, fixtureSource()).WithMirror(mirror)
	out := filepath.Join(t.TempDir(), "data", "airports.json")

	result, err := svc.Run(context.Background(), RegenerationOptions{OutputPath: out})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Nadzab Field is neither "airport" nor "international" and is not published.
	if len(result.Records) != 3 {
		t.Fatalf("Expected 3 published records, got %d", len(result.Records))
	}
	if result.Records[0].IATACode != "LHR" || result.Records[0].PopularityScore != 142 {
		t.Errorf("Expected Heathrow first with 142, got %+v", result.Records[0])
	}
	for i := 1; i < len(result.Records); i++ {
		if result.Records[i-1].PopularityScore < result.Records[i].PopularityScore {
			t.Errorf("Records not ranked by score: %+v", result.Records)
		}
	}
	if result.CountrySource != constants.SourceISOCSV {
		t.Errorf("Expected iso.csv country source, got %s", result.CountrySource)
	}
	if result.OurAirports.Accepted != 1 || result.OurAirports.Dropped != 1 {
		t.Errorf("Unexpected OurAirports stats %+v", result.OurAirports)
	}
	if len(mirror.records) != 3 || result.Mirrored != 3 {
		t.Errorf("Expected mirror to receive 3 records, got %d", len(mirror.records))
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected dataset file, got %v", err)
	}
	defer f.Close()
	written, err := dataset.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Errorf("Expected 3 records on disk, got %d", len(written))
	}

	resp := result.Response()
	if resp.Records != 3 || resp.DatasetPath != out || resp.BackupPath != "" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestRegenerationService_SecondRunKeepsBackup(t *testing.T) {
	svc := newTestRegeneration(t, fixtureSource())
	out := filepath.Join(t.TempDir(), "airports.json")

	if _, err := svc.Run(context.Background(), RegenerationOptions{OutputPath: out}); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.Run(context.Background(), RegenerationOptions{OutputPath: out})
	if err != nil {
		t.Fatal(err)
	}
	if result.Write.BackupPath != dataset.BackupPath(out) {
		t.Errorf("Expected backup at %s, got %q", dataset.BackupPath(out), result.Write.BackupPath)
	}

	backup, err := os.ReadFile(dataset.BackupPath(out))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backup, first) {
		t.Error("Expected backup to hold the exact prior bytes")
	}
}

func TestRegenerationService_SourceFailureWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "airports.json")
	if err := os.WriteFile(out, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := fixtureSource()
	src.fail = map[string]error{ourAirportsURL: errors.New("connection reset")}
	svc := newTestRegeneration(t, src)

	_, err := svc.Run(context.Background(), RegenerationOptions{OutputPath: out})
	if err == nil {
		t.Fatal("Expected error")
	}
	var srcErr *providers.SourceError
	if !errors.As(err, &srcErr) || srcErr.Source != constants.SourceOurAirports {
		t.Errorf("Expected OurAirports SourceError, got %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "[]\n" {
		t.Errorf("Expected prior file untouched, got %q (%v)", data, err)
	}
	if _, err := os.Stat(dataset.BackupPath(out)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no backup file, got %v", err)
	}
}

func TestRegenerationService_DryRun(t *testing.T) {
	svc := newTestRegeneration(t, fixtureSource())
	out := filepath.Join(t.TempDir(), "airports.json")

	result, err := svc.Run(context.Background(), RegenerationOptions{OutputPath: out, DryRun: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(result.Records))
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no dataset file on dry run, got %v", err)
	}
}

func TestRegenerationService_WritesCSVSnapshot(t *testing.T) {
	svc := newTestRegeneration(t, fixtureSource())
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "airports.csv")

	_, err := svc.Run(context.Background(), RegenerationOptions{
		OutputPath: filepath.Join(dir, "airports.json"),
		CSVPath:    csvPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Expected CSV snapshot, got %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 4 {
		t.Errorf("Expected header and 3 rows, got %d lines", lines)
	}
}

func TestRegenerationService_TriggerInvalidatesStore(t *testing.T) {
	out := filepath.Join(t.TempDir(), "airports.json")
	if _, err := dataset.Write(out, []models.AirportRecord{}); err != nil {
		t.Fatal(err)
	}
	store := dataset.NewStore(out, nil)
	before, err := store.Current()
	if err != nil || before.Index.Len() != 0 {
		t.Fatalf("Expected empty dataset, got %v", err)
	}

	svc := newTestRegeneration(t, fixtureSource()).WithStore(store)
	if _, _, err := svc.Trigger(context.Background(), RegenerationOptions{OutputPath: out}); err != nil {
		t.Fatal(err)
	}

	after, err := store.Current()
	if err != nil {
		t.Fatal(err)
	}
	if after.Index.Len() != 3 {
		t.Errorf("Expected 3 records after regeneration, got %d", after.Index.Len())
	}
}

func TestRegenerationService_RequiresOutputPath(t *testing.T) {
	svc := newTestRegeneration(t, fixtureSource())
	if _, err := svc.Run(context.Background(), RegenerationOptions{}); err == nil {
		t.Error("Expected error without output path")
	}
}

type failingMirror struct{}

func (failingMirror) ReplaceAll(ctx context.Context, records []models.AirportRecord) (int64, error) {
	return 0, errors.New("database is locked")
}

func TestRegenerationService_SecondaryFailuresAfterPublish(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "airports.json")
	store := dataset.NewStore(out, nil)
	svc := newTestRegeneration(t, fixtureSource()).WithStore(store).WithMirror(failingMirror{})

	// a regular file where the snapshot directory should be
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, _, err := svc.Trigger(context.Background(), RegenerationOptions{
		OutputPath: out,
		CSVPath:    filepath.Join(blocker, "airports.csv"),
	})
	if err != nil {
		t.Fatalf("Expected the published run to succeed, got %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("Expected CSV and mirror warnings, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "CSV snapshot") || !strings.Contains(result.Warnings[1], "database is locked") {
		t.Errorf("Unexpected warnings %v", result.Warnings)
	}
	if result.Mirrored != 0 {
		t.Errorf("Expected nothing mirrored, got %d", result.Mirrored)
	}
	if resp := result.Response(); len(resp.Warnings) != 2 {
		t.Errorf("Expected warnings in response, got %+v", resp)
	}

	snap, err := store.Current()
	if err != nil {
		t.Fatalf("Expected the new dataset to be served, got %v", err)
	}
	if snap.Index.Len() != 3 {
		t.Errorf("Expected 3 served records, got %d", snap.Index.Len())
	}
}
