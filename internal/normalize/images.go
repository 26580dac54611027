package normalize

import (
	"github.com/skywatch/nasa-gateway/internal/models"
	"github.com/skywatch/nasa-gateway/internal/nasa"
)

// ImageSearch maps the nested collection payload. Items without a single
// retrievable link are dropped from the result set; TotalHits keeps the
// upstream metadata count even when items were filtered.
func ImageSearch(raw *nasa.ImageSearchPayload) (*models.ImageSearchResult, error) {
	if raw == nil {
		return nil, nasa.Malformed("image search payload is empty")
	}

	assets := make([]models.ImageAsset, 0, len(raw.Collection.Items))
	for _, item := range raw.Collection.Items {
		thumb, ok := pickThumbnail(item.Links)
		if !ok {
			continue
		}
		if len(item.Data) == 0 {
			return nil, nasa.Malformed("image search item lacks a data record")
		}
		record := item.Data[0]
		if record.NASAID == "" {
			return nil, nasa.Malformed("image search item lacks nasa_id")
		}

		keywords := record.Keywords
		if keywords == nil {
			keywords = []string{}
		}

		assets = append(assets, models.ImageAsset{
			ID:           record.NASAID,
			Title:        optional(record.Title),
			Description:  optional(record.Description),
			DateCreated:  optional(record.DateCreated),
			Center:       optional(record.Center),
			Keywords:     keywords,
			ThumbnailURL: thumb,
			MediaType:    record.MediaType,
		})
	}

	return &models.ImageSearchResult{
		Items:     assets,
		TotalHits: raw.Collection.Metadata.TotalHits,
	}, nil
}

// pickThumbnail applies the fallback order: the link tagged "preview",
// then the first link with a usable href.
func pickThumbnail(links []nasa.ImageLink) (string, bool) {
	first := ""
	for _, link := range links {
		if link.Href == "" {
			continue
		}
		if link.Rel == "preview" {
			return link.Href, true
		}
		if first == "" {
			first = link.Href
		}
	}
	if first == "" {
		return "", false
	}
	return first, true
}
