package cache

import (
	"fmt"
	"time"
)

// Cache key builders and TTLs. TTL values are part of the read endpoints'
// staleness contract: search caches are never evicted on writes and a new
// row stays invisible to searches until its key expires.
const (
	BusinessSearchTTL       = 15 * time.Minute
	BusinessReviewsTTL      = 15 * time.Minute
	ActivitySearchTTL       = 15 * time.Minute
	CollaborationFarmersTTL = 60 * time.Minute
	WeatherTTL              = 30 * time.Minute
)

func BusinessSearchKey(query, category string, page int) string {
	return fmt.Sprintf("business_search_%s_%s_%d", query, category, page)
}

func BusinessReviewsKey(businessID int64) string {
	return fmt.Sprintf("business_reviews_%d", businessID)
}

func ActivitySearchKey(query string) string {
	return fmt.Sprintf("activities_search_%s", query)
}

func CollaborationFarmersKey(collaborationID int64) string {
	return fmt.Sprintf("collaboration_farmers_%d", collaborationID)
}

func WeatherKey(location string) string {
	return fmt.Sprintf("weather_%s", location)
}
