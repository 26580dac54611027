package nasa

// Raw wire shapes, one family per provider. Only the keys the normalizers
// read are declared; everything else in the upstream body is ignored.

// APODPayload mirrors the flat object returned by GET /planetary/apod.
type APODPayload struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	Date        string `json:"date"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

// ImageSearchPayload mirrors the nested collection returned by GET /search.
type ImageSearchPayload struct {
	Collection ImageCollection `json:"collection"`
}

type ImageCollection struct {
	Items    []ImageItem   `json:"items"`
	Metadata ImageMetadata `json:"metadata"`
}

type ImageMetadata struct {
	TotalHits int `json:"total_hits"`
}

type ImageItem struct {
	Href  string      `json:"href"`
	Data  []ImageData `json:"data"`
	Links []ImageLink `json:"links"`
}

type ImageData struct {
	NASAID      string   `json:"nasa_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DateCreated string   `json:"date_created"`
	Center      string   `json:"center"`
	Keywords    []string `json:"keywords"`
	MediaType   string   `json:"media_type"`
}

type ImageLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Render string `json:"render"`
}

// NEOFeedPayload mirrors the date-keyed map returned by GET /neo/rest/v1/feed.
type NEOFeedPayload struct {
	ElementCount     *int                   `json:"element_count"`
	NearEarthObjects map[string][]NEORecord `json:"near_earth_objects"`
}

type NEORecord struct {
	ID                     string                `json:"id"`
	Name                   string                `json:"name"`
	NASAJPLURL             string                `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH     *float64              `json:"absolute_magnitude_h"`
	IsPotentiallyHazardous bool                  `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter      NEODiameter           `json:"estimated_diameter"`
	CloseApproachData      []CloseApproachRecord `json:"close_approach_data"`
}

type NEODiameter struct {
	Meters *NEODiameterRange `json:"meters"`
}

type NEODiameterRange struct {
	Min *float64 `json:"estimated_diameter_min"`
	Max *float64 `json:"estimated_diameter_max"`
}

type CloseApproachRecord struct {
	Date             string           `json:"close_approach_date"`
	RelativeVelocity RelativeVelocity `json:"relative_velocity"`
	MissDistance     MissDistance     `json:"miss_distance"`
	OrbitingBody     string           `json:"orbiting_body"`
}

type RelativeVelocity struct {
	KilometersPerHour string `json:"kilometers_per_hour"`
}

type MissDistance struct {
	Kilometers string `json:"kilometers"`
}
