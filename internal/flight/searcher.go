package flight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skytrip/pkg/cache"
	"skytrip/pkg/logger"
	"skytrip/pkg/skyscrapper"
)

// cachingSearcher puts Redis in front of the vendor search endpoints. A new
// one is made per search so it can report what happened to that search.
type cachingSearcher struct {
	client VendorClient
	cache  cache.Cache
	ttl    time.Duration
	logger logger.Client

	cacheKey string
	cacheHit bool
}

func (s *cachingSearcher) SearchFlightsComplete(ctx context.Context, p skyscrapper.SearchFlightsParams) (*skyscrapper.SearchResponse, error) {
	return s.cached(ctx, generateCacheKey("complete", p), func() (*skyscrapper.SearchResponse, error) {
		return s.client.SearchFlightsComplete(ctx, p)
	})
}

func (s *cachingSearcher) SearchFlightsMultiStops(ctx context.Context, p skyscrapper.MultiStopParams) (*skyscrapper.SearchResponse, error) {
	return s.cached(ctx, generateCacheKey("multistop", p), func() (*skyscrapper.SearchResponse, error) {
		return s.client.SearchFlightsMultiStops(ctx, p)
	})
}

func (s *cachingSearcher) cached(ctx context.Context, key string, fetch func() (*skyscrapper.SearchResponse, error)) (*skyscrapper.SearchResponse, error) {
	s.cacheKey = key
	s.cacheHit = false

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil && cached != "":
		var response skyscrapper.SearchResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			s.logger.Info("Cache hit for search", logger.Field{Key: "cache_key", Value: key})
			s.cacheHit = true
			return &response, nil
		}
		s.logger.Error("Failed to unmarshal cached data", logger.Field{Key: "cache_key", Value: key})
	case err != nil && !errors.Is(err, cache.ErrMiss):
		s.logger.Warn("Cache read failed", logger.Field{Key: "cache_key", Value: key}, logger.Field{Key: "err", Value: err})
	}

	s.logger.Info("Cache miss for search", logger.Field{Key: "cache_key", Value: key})
	response, err := fetch()
	if err != nil {
		return nil, err
	}

	// an unfinished search is not worth replaying
	if !response.Status || response.Data.Context.Status == "incomplete" {
		return response, nil
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("Failed to marshal response", logger.Field{Key: "err", Value: err})
		return response, nil
	}
	if err := s.cache.Set(ctx, key, string(responseBytes), s.ttl); err != nil {
		s.logger.Error("Failed to cache response", logger.Field{Key: "err", Value: err})
	}
	return response, nil
}

// generateCacheKey creates a deterministic key from search parameters
func generateCacheKey(kind string, params any) string {
	b, _ := json.Marshal(params)
	hash := sha256.Sum256(append([]byte(kind+":"), b...))
	return fmt.Sprintf("flight:search:%x", hash[:16])
}
