// Package normalize maps each provider's raw payload into the canonical
// entity types. Every function here is pure: no I/O, no shared state, and
// deterministic output for a given input.
package normalize

import (
	"github.com/skywatch/nasa-gateway/internal/models"
	"github.com/skywatch/nasa-gateway/internal/nasa"
)

// APOD maps the flat daily-picture payload. Title, date and url are
// required; hdurl and copyright default to null when absent.
func APOD(raw *nasa.APODPayload) (*models.AstronomyPicture, error) {
	if raw == nil {
		return nil, nasa.Malformed("apod payload is empty")
	}
	if raw.Title == "" {
		return nil, nasa.Malformed("apod payload lacks title")
	}
	if raw.Date == "" {
		return nil, nasa.Malformed("apod payload lacks date")
	}
	if raw.URL == "" {
		return nil, nasa.Malformed("apod payload lacks url")
	}
	if raw.MediaType != models.MediaTypeImage && raw.MediaType != models.MediaTypeVideo {
		return nil, nasa.Malformed("apod media_type %q is not recognized", raw.MediaType)
	}

	return &models.AstronomyPicture{
		Title:       raw.Title,
		Explanation: raw.Explanation,
		URL:         raw.URL,
		HDURL:       optional(raw.HDURL),
		Date:        raw.Date,
		MediaType:   raw.MediaType,
		Copyright:   optional(raw.Copyright),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
