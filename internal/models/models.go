// Package models holds the canonical entity types every upstream payload is
// normalized into. All types are plain values built fresh per request.
package models

// Media types recognized for an AstronomyPicture.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// AstronomyPicture is the canonical daily-picture record.
type AstronomyPicture struct {
	Title       string  `json:"title"`
	Explanation string  `json:"explanation"`
	URL         string  `json:"url"`
	HDURL       *string `json:"hdurl"`
	Date        string  `json:"date"`
	MediaType   string  `json:"mediaType"`
	Copyright   *string `json:"copyright"`
}

// ImageAsset is one retrievable item from the image-search provider.
// An asset always carries a non-empty ThumbnailURL; records without any
// link are never turned into assets.
type ImageAsset struct {
	ID           string   `json:"id"`
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	DateCreated  *string  `json:"dateCreated"`
	Center       *string  `json:"center"`
	Keywords     []string `json:"keywords"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	MediaType    string   `json:"mediaType"`
}

// ImageSearchResult bundles assets with the upstream's total hit count,
// which may exceed len(Items) when records were filtered or paginated.
type ImageSearchResult struct {
	Items     []ImageAsset `json:"items"`
	TotalHits int          `json:"totalHits"`
}

// CloseApproach describes one close pass of a near-Earth object.
type CloseApproach struct {
	Date                string  `json:"date"`
	MissDistanceKm      *string `json:"missDistanceKm"`
	RelativeVelocityKmh *string `json:"relativeVelocityKmh"`
	OrbitingBody        *string `json:"orbitingBody"`
}

// NearEarthObject is the canonical asteroid record. Approach is derived from
// the first close-approach entry reported for the queried window.
type NearEarthObject struct {
	ID                     string        `json:"id"`
	Name                   string        `json:"name"`
	AbsoluteMagnitudeH     *float64      `json:"absoluteMagnitudeH"`
	IsPotentiallyHazardous bool          `json:"isPotentiallyHazardous"`
	EstimatedDiameterMinM  *float64      `json:"estimatedDiameterMinM"`
	EstimatedDiameterMaxM  *float64      `json:"estimatedDiameterMaxM"`
	JPLUrl                 *string       `json:"jplUrl"`
	Approach               CloseApproach `json:"approach"`
}

// DayBucket groups the objects approaching on one calendar date.
type DayBucket struct {
	Date    string            `json:"date"`
	Objects []NearEarthObject `json:"objects"`
}

// NEOFeed is the flattened feed: buckets sorted ascending by date, no
// duplicate dates, ElementCount equal to the total object count.
type NEOFeed struct {
	ElementCount int         `json:"elementCount"`
	Buckets      []DayBucket `json:"buckets"`
}

// Health is the health probe response.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
