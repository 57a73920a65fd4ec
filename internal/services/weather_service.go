package services

import (
	"context"
	"encoding/json"
	"farmbiz-service/internal/cache"
	"farmbiz-service/internal/config"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// WeatherUnavailable is recorded on an activity when the conditions lookup
// fails for any reason (missing key, network error, unknown location).
const WeatherUnavailable = "Weather data not available"

type IWeatherService interface {
	GetConditions(ctx context.Context, location string) string
}

type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   cache.Store
}

func NewWeatherService(cfg config.WeatherConfig, cacheStore cache.Store) IWeatherService {
	return &WeatherService{
		apiKey:  cfg.APIKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cacheStore,
	}
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// GetConditions returns a short textual description of current conditions at
// the location, cached for 30 minutes per location. Failures degrade to the
// WeatherUnavailable literal instead of surfacing an error; the fallback is
// never cached, so a transient outage does not stick for the full TTL.
func (s *WeatherService) GetConditions(ctx context.Context, location string) string {
	if location == "" {
		return WeatherUnavailable
	}

	key := cache.WeatherKey(location)
	var cached string
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached
	}

	description, err := s.fetchDescription(ctx, location)
	if err != nil {
		log.Printf("weather lookup failed for %s: %v", location, err)
		return WeatherUnavailable
	}

	if err := s.cache.SetJSON(ctx, key, description, cache.WeatherTTL); err != nil {
		log.Printf("failed to cache weather for %s: %v", location, err)
	}
	return description
}

func (s *WeatherService) fetchDescription(ctx context.Context, location string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("weather API key is not configured")
	}

	endpoint := fmt.Sprintf("%s?q=%s&appid=%s",
		s.baseURL, url.QueryEscape(location), url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return "", fmt.Errorf("weather response has no conditions for %s", location)
	}

	return payload.Weather[0].Description, nil
}
