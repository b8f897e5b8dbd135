// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package hanriver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	reading *Reading
	err     error
	calls   int
}

func (fetcher *fakeFetcher) Fetch(_ context.Context, area int) (*Reading, error) {
	fetcher.calls++
	if fetcher.err != nil {
		return nil, fetcher.err
	}

	clone := *fetcher.reading
	clone.Area = area

	return &clone, nil
}

type fakeCache struct {
	entries map[string]string
	getErr  error
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string]string)} }

func (cache *fakeCache) Get(_ context.Context, key string) (string, error) {
	if cache.getErr != nil {
		return "", cache.getErr
	}
	value, ok := cache.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}

	return value, nil
}

func (cache *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	cache.entries[key] = value

	return nil
}

func newTestService(fetcher *fakeFetcher, cache Cache) *Service {
	return NewService(fetcher, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceReadingCachesFetch(t *testing.T) {
	fetcher := &fakeFetcher{reading: &Reading{Site: "노량진", Temperature: 8.5, PH: 7.2}}
	cache := newFakeCache()
	service := newTestService(fetcher, cache)

	first, err := service.Reading(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Area)
	assert.Equal(t, 1, fetcher.calls)

	second, err := service.Reading(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.Site, second.Site)
	assert.Equal(t, 1, fetcher.calls, "the second read must come from the cache")
}

func TestServiceReadingPerAreaKeys(t *testing.T) {
	fetcher := &fakeFetcher{reading: &Reading{Site: "잠실"}}
	service := newTestService(fetcher, newFakeCache())

	_, err := service.Reading(context.Background(), 1)
	require.NoError(t, err)
	_, err = service.Reading(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls, "different areas must not share cache entries")
}

func TestServiceReadingBrokenCacheDegrades(t *testing.T) {
	fetcher := &fakeFetcher{reading: &Reading{Site: "선유"}}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	service := newTestService(fetcher, cache)

	reading, err := service.Reading(context.Background(), 1)

	require.NoError(t, err, "a broken cache must not take the endpoint down")
	assert.Equal(t, "선유", reading.Site)
}

func TestServiceReadingCorruptCacheEntry(t *testing.T) {
	fetcher := &fakeFetcher{reading: &Reading{Site: "노량진"}}
	cache := newFakeCache()
	cache.entries["hanriver:area:1"] = "{not json"
	service := newTestService(fetcher, cache)

	reading, err := service.Reading(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "노량진", reading.Site)
	assert.Equal(t, 1, fetcher.calls, "corrupt entries fall through to a fresh fetch")
}

func TestServiceReadingUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("gateway down")}
	service := newTestService(fetcher, newFakeCache())

	_, err := service.Reading(context.Background(), 1)

	assert.Error(t, err)
}
