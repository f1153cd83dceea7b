package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/dataset"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/metrics"
	"flight-footprint/atlas/internal/models"
	"flight-footprint/atlas/internal/models/dtos"
	"flight-footprint/atlas/internal/providers"
)

// SourceLocations names where each reference source is read from.
type SourceLocations struct {
	OpenFlights string
	OurAirports string
	Factbook    string
	ISOCSVPath  string
}

// RegenerationOptions controls one regeneration run.
type RegenerationOptions struct {
	OutputPath string
	CSVPath    string
	DryRun     bool
}

// RegenerationResult summarizes a run. Records is the published dataset.
type RegenerationResult struct {
	RunID         string
	Records       []models.AirportRecord
	Write         dataset.WriteResult
	CountrySource constants.SourceName
	OpenFlights   airports.LoadStats
	OurAirports   airports.LoadStats
	Mirrored      int64
	Duration      time.Duration

	// Warnings lists secondary outputs that failed after the dataset
	// itself was published.
	Warnings []string
}

// AirportMirror receives a copy of every published dataset.
type AirportMirror interface {
	ReplaceAll(ctx context.Context, records []models.AirportRecord) (int64, error)
}

// RegenerationService fetches the reference sources, builds the ranked
// dataset and publishes it.
type RegenerationService struct {
	source       providers.ReferenceSource
	locations    SourceLocations
	scoring      airports.ScoringConfig
	airportTypes []string
	mirror       AirportMirror
	store        *dataset.Store
	metrics      *metrics.MetricsRegistry

	group singleflight.Group
}

func NewRegenerationService(
	source providers.ReferenceSource,
	locations SourceLocations,
	scoring airports.ScoringConfig,
	airportTypes []string,
	metricsReg *metrics.MetricsRegistry,
) *RegenerationService {
	return &RegenerationService{
		source:       source,
		locations:    locations,
		scoring:      scoring,
		airportTypes: airportTypes,
		metrics:      metricsReg,
	}
}

// WithMirror also replaces the SQL mirror after each successful write.
func (s *RegenerationService) WithMirror(mirror AirportMirror) *RegenerationService {
	s.mirror = mirror
	return s
}

// WithStore invalidates the served dataset after each successful write.
func (s *RegenerationService) WithStore(store *dataset.Store) *RegenerationService {
	s.store = store
	return s
}

// Trigger runs a regeneration, sharing the run with any concurrent caller
// asking for the same output path.
func (s *RegenerationService) Trigger(ctx context.Context, opts RegenerationOptions) (*RegenerationResult, bool, error) {
	v, err, shared := s.group.Do(opts.OutputPath, func() (interface{}, error) {
		return s.Run(ctx, opts)
	})
	if err != nil {
		return nil, shared, err
	}
	return v.(*RegenerationResult), shared, nil
}

// Run performs one regeneration. Any source failure aborts the run before
// anything is written. Once the dataset file is replaced the run succeeds;
// CSV snapshot and mirror failures are reported in Warnings.
func (s *RegenerationService) Run(ctx context.Context, opts RegenerationOptions) (*RegenerationResult, error) {
	start := time.Now()
	result := &RegenerationResult{RunID: uuid.New().String()}
	log := logging.GetLogger().With("run_id", result.RunID)

	err := s.run(ctx, opts, result)
	result.Duration = time.Since(start)
	s.observe(result.Duration, opts, result, err)

	if err != nil {
		log.Errorw("Regeneration failed", "error", err, "duration", result.Duration.String())
		return nil, err
	}

	log.Infow("Regeneration finished",
		"records", humanize.Comma(int64(len(result.Records))),
		"dry_run", opts.DryRun,
		"warnings", len(result.Warnings),
		"duration", result.Duration.String(),
	)
	return result, nil
}

func (s *RegenerationService) run(ctx context.Context, opts RegenerationOptions, result *RegenerationResult) error {
	if !opts.DryRun && opts.OutputPath == "" {
		return errors.New("output path is required")
	}

	codes, countrySource, err := providers.LoadCountryCodes(ctx, s.source, s.locations.ISOCSVPath, s.locations.Factbook)
	if err != nil {
		return fmt.Errorf("failed to load country codes: %w", err)
	}
	result.CountrySource = countrySource

	onRowError := s.decodeRowError
	openFlights, err := providers.FetchOpenFlights(ctx, s.source, s.locations.OpenFlights, onRowError)
	if err != nil {
		return fmt.Errorf("failed to fetch OpenFlights: %w", err)
	}
	ourAirports, err := providers.FetchOurAirports(ctx, s.source, s.locations.OurAirports, onRowError)
	if err != nil {
		return fmt.Errorf("failed to fetch OurAirports: %w", err)
	}

	loader := airports.NewLoader(airports.NewCountryCodeMap(codes), s.metrics)
	if len(s.airportTypes) > 0 {
		loader.AirportTypes = s.airportTypes
	}

	reg := airports.NewRegistry()
	result.OpenFlights = loader.LoadOpenFlights(reg, openFlights)
	result.OurAirports = loader.LoadOurAirports(reg, ourAirports)
	result.Records = airports.Publish(reg.Records(), s.scoring)

	logging.Info("Dataset assembled",
		"run_id", result.RunID,
		"merged", reg.Len(),
		"published", len(result.Records),
		"openflights_accepted", result.OpenFlights.Accepted,
		"ourairports_accepted", result.OurAirports.Accepted,
	)

	if opts.DryRun {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	result.Write, err = dataset.Write(opts.OutputPath, result.Records)
	if err != nil {
		return err
	}
	if s.store != nil {
		s.store.Invalidate()
	}

	if opts.CSVPath != "" {
		if err := dataset.WriteCSV(opts.CSVPath, result.Records); err != nil {
			result.warn(fmt.Errorf("failed to write CSV snapshot: %w", err))
		}
	}

	if s.mirror != nil {
		mirrored, err := s.mirror.ReplaceAll(ctx, result.Records)
		if err != nil {
			result.warn(fmt.Errorf("failed to mirror dataset: %w", err))
		} else {
			result.Mirrored = mirrored
		}
	}
	return nil
}

func (r *RegenerationResult) warn(err error) {
	logging.Warn("Regeneration output failed", "run_id", r.RunID, "error", err)
	r.Warnings = append(r.Warnings, err.Error())
}

func (s *RegenerationService) decodeRowError(source constants.SourceName, row int, err error) {
	logging.Warn("Skipping malformed row", "source", source, "row", row, "error", err)
	if s.metrics != nil {
		s.metrics.RowsSkippedTotal.WithLabelValues(string(source), constants.SkipReasonDecodeError).Inc()
	}
}

func (s *RegenerationService) observe(d time.Duration, opts RegenerationOptions, result *RegenerationResult, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case err != nil:
		outcome = "failure"
	case opts.DryRun:
		outcome = "dry_run"
	case len(result.Warnings) > 0:
		outcome = "partial"
	}
	s.metrics.RegenerationsTotal.WithLabelValues(outcome).Inc()
	s.metrics.RegenerationDuration.Observe(d.Seconds())
}

// Response converts the result into the admin endpoint body.
func (r *RegenerationResult) Response() dtos.RegenerationResponse {
	return dtos.RegenerationResponse{
		RunID:            r.RunID,
		Records:          len(r.Records),
		DatasetPath:      r.Write.Path,
		BackupPath:       r.Write.BackupPath,
		BytesWritten:     r.Write.Bytes,
		CountrySource:    string(r.CountrySource),
		MirroredRecords:  r.Mirrored,
		Warnings:         r.Warnings,
		Duration:         r.Duration,
		DurationReadable: r.Duration.Round(time.Millisecond).String(),
	}
}
