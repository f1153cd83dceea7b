package services

import (
	"time"

	geohash "github.com/TomiHiltunen/geohash-golang"
	jsoniter "github.com/json-iterator/go"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/dataset"
	"flight-footprint/atlas/internal/metrics"
	"flight-footprint/atlas/internal/models"
	"flight-footprint/atlas/internal/models/dtos"
)

const didYouMeanLimit = 3

// LookupService answers read-only queries against the served dataset.
type LookupService struct {
	store    *dataset.Store
	cache    common.CacheInterface
	cacheTTL time.Duration
	metrics  *metrics.MetricsRegistry
}

// NewLookupService creates a lookup service. cache may be nil to disable
// suggest response caching.
func NewLookupService(store *dataset.Store, cache common.CacheInterface, cacheTTL time.Duration, metricsReg *metrics.MetricsRegistry) *LookupService {
	return &LookupService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metricsReg,
	}
}

// Suggest returns the first matches for query, with close names when
// nothing matched.
func (s *LookupService) Suggest(query string) (dtos.SuggestResponse, error) {
	snap, err := s.store.Current()
	if err != nil {
		return dtos.SuggestResponse{}, err
	}
	return suggestFrom(snap.Index, query), nil
}

// SuggestJSON returns the encoded Suggest body, served from the response
// cache when this dataset version already answered the same query.
func (s *LookupService) SuggestJSON(query string) ([]byte, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}

	if s.cache == nil || s.cacheTTL <= 0 {
		return jsoniter.Marshal(suggestFrom(snap.Index, query))
	}

	key := common.SuggestCacheKey(string(constants.CachePrefixSuggest), snap.Version, query)
	missed := false
	body, err := s.cache.GetOrSet(key, s.cacheTTL, func() ([]byte, error) {
		missed = true
		return jsoniter.Marshal(suggestFrom(snap.Index, query))
	})
	if err != nil {
		return nil, err
	}
	s.countCache(!missed)
	return body, nil
}

// Coordinates looks up the first airport whose name equals name exactly.
func (s *LookupService) Coordinates(name string) (dtos.CoordinatesResponse, error) {
	snap, err := s.store.Current()
	if err != nil {
		return dtos.CoordinatesResponse{}, err
	}

	rec, err := snap.Index.Coordinates(name)
	if err != nil {
		return dtos.CoordinatesResponse{}, err
	}
	return dtos.CoordinatesResponse{
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Geohash:   geohash.Encode(rec.Latitude, rec.Longitude),
	}, nil
}

// Airport looks up a record by IATA code.
func (s *LookupService) Airport(code string) (models.AirportRecord, error) {
	snap, err := s.store.Current()
	if err != nil {
		return models.AirportRecord{}, err
	}
	return snap.Index.ByIATA(code)
}

// Emissions estimates the CO2 of a flight between two IATA codes.
func (s *LookupService) Emissions(origin, destination string, roundTrip bool, passengers int) (airports.EmissionsEstimate, error) {
	snap, err := s.store.Current()
	if err != nil {
		return airports.EmissionsEstimate{}, err
	}

	from, err := snap.Index.ByIATA(origin)
	if err != nil {
		return airports.EmissionsEstimate{}, err
	}
	to, err := snap.Index.ByIATA(destination)
	if err != nil {
		return airports.EmissionsEstimate{}, err
	}
	return airports.Estimate(from, to, roundTrip, passengers)
}

// DatasetStatus reports the size and version of the served dataset.
func (s *LookupService) DatasetStatus() (int, string, error) {
	snap, err := s.store.Current()
	if err != nil {
		return 0, "", err
	}
	return snap.Index.Len(), snap.Version, nil
}

func suggestFrom(ix *airports.Index, query string) dtos.SuggestResponse {
	resp := dtos.SuggestResponse{Suggestions: ix.Suggest(query)}
	if len(resp.Suggestions) == 0 {
		resp.DidYouMean = ix.DidYouMean(query, didYouMeanLimit)
	}
	return resp
}

func (s *LookupService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	pattern := string(constants.CachePrefixSuggest)
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}
