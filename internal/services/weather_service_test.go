package services

import (
	"context"
	"farmbiz-service/internal/cache"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeatherServiceForTest(serverURL string, cacheStore *stubCache) *WeatherService {
	return &WeatherService{
		apiKey:  "test-key",
		baseURL: serverURL,
		client:  &http.Client{Timeout: time.Second},
		cache:   cacheStore,
	}
}

func TestGetConditionsReturnsDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Nakuru", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`{"weather":[{"description":"scattered clouds"}]}`))
	}))
	defer server.Close()

	svc := newWeatherServiceForTest(server.URL, newStubCache())

	assert.Equal(t, "scattered clouds", svc.GetConditions(context.Background(), "Nakuru"))
}

func TestGetConditionsCachesPerLocation(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"weather":[{"description":"light rain"}]}`))
	}))
	defer server.Close()

	svc := newWeatherServiceForTest(server.URL, newStubCache())

	assert.Equal(t, "light rain", svc.GetConditions(context.Background(), "Eldoret"))
	assert.Equal(t, "light rain", svc.GetConditions(context.Background(), "Eldoret"))
	assert.Equal(t, 1, calls, "second lookup must come from cache")
}

func TestGetConditionsFallsBackOnNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cacheStore := newStubCache()
	svc := newWeatherServiceForTest(server.URL, cacheStore)

	assert.Equal(t, WeatherUnavailable, svc.GetConditions(context.Background(), "Atlantis"))

	// The fallback is never cached.
	_, cached := cacheStore.data[cache.WeatherKey("Atlantis")]
	assert.False(t, cached)
}

func TestGetConditionsFallsBackOnTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	svc := newWeatherServiceForTest(server.URL, newStubCache())

	assert.Equal(t, WeatherUnavailable, svc.GetConditions(context.Background(), "Nakuru"))
}

func TestGetConditionsFallsBackOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"weather":[{"description":"clear sky"}]}`))
	}))
	defer server.Close()

	svc := newWeatherServiceForTest(server.URL, newStubCache())
	svc.client.Timeout = 50 * time.Millisecond

	assert.Equal(t, WeatherUnavailable, svc.GetConditions(context.Background(), "Nakuru"))
}

func TestGetConditionsFallsBackWithoutAPIKey(t *testing.T) {
	svc := newWeatherServiceForTest("http://localhost:0", newStubCache())
	svc.apiKey = ""

	assert.Equal(t, WeatherUnavailable, svc.GetConditions(context.Background(), "Nakuru"))
}

func TestGetConditionsFallsBackOnEmptyLocation(t *testing.T) {
	svc := newWeatherServiceForTest("http://localhost:0", newStubCache())

	require.Equal(t, WeatherUnavailable, svc.GetConditions(context.Background(), ""))
}

func TestGetConditionsFallsBackOnEmptyWeatherList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather":[]}`))
	}))
	defer server.Close()

	svc := newWeatherServiceForTest(server.URL, newStubCache())

	assert.Equal(t, WeatherUnavailable, svc.GetConditions(context.Background(), "Nakuru"))
}
