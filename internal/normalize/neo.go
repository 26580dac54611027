package normalize

import (
	"sort"
	"time"

	"github.com/skywatch/nasa-gateway/internal/models"
	"github.com/skywatch/nasa-gateway/internal/nasa"
)

const dateLayout = "2006-01-02"

// NEOFeed flattens the date-keyed map into buckets sorted ascending by
// calendar date. ElementCount is always the computed sum over buckets; the
// dispatcher cross-checks it against the upstream-supplied count.
func NEOFeed(raw *nasa.NEOFeedPayload) (*models.NEOFeed, error) {
	if raw == nil || raw.NearEarthObjects == nil {
		return nil, nasa.Malformed("neo feed payload lacks near_earth_objects")
	}

	dates := make([]string, 0, len(raw.NearEarthObjects))
	for date := range raw.NearEarthObjects {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, nasa.Malformed("neo feed date key %q is not a calendar date", date)
		}
		dates = append(dates, date)
	}
	// ISO dates order lexicographically the same as chronologically.
	sort.Strings(dates)

	feed := &models.NEOFeed{Buckets: make([]models.DayBucket, 0, len(dates))}
	for _, date := range dates {
		records := raw.NearEarthObjects[date]
		objects := make([]models.NearEarthObject, 0, len(records))
		for _, record := range records {
			obj, err := nearEarthObject(record, date)
			if err != nil {
				return nil, err
			}
			objects = append(objects, obj)
		}
		feed.Buckets = append(feed.Buckets, models.DayBucket{Date: date, Objects: objects})
		feed.ElementCount += len(objects)
	}

	return feed, nil
}

func nearEarthObject(record nasa.NEORecord, bucketDate string) (models.NearEarthObject, error) {
	if record.ID == "" {
		return models.NearEarthObject{}, nasa.Malformed("neo record lacks id")
	}
	if record.Name == "" {
		return models.NearEarthObject{}, nasa.Malformed("neo record %s lacks name", record.ID)
	}

	obj := models.NearEarthObject{
		ID:                     record.ID,
		Name:                   record.Name,
		AbsoluteMagnitudeH:     record.AbsoluteMagnitudeH,
		IsPotentiallyHazardous: record.IsPotentiallyHazardous,
		JPLUrl:                 optional(record.NASAJPLURL),
		// Records with no close-approach entry still belong to a dated
		// bucket, so the bucket date stands in.
		Approach: models.CloseApproach{Date: bucketDate},
	}

	if meters := record.EstimatedDiameter.Meters; meters != nil {
		obj.EstimatedDiameterMinM = meters.Min
		obj.EstimatedDiameterMaxM = meters.Max
	}

	// The first close-approach record in the queried window is canonical.
	if len(record.CloseApproachData) > 0 {
		approach := record.CloseApproachData[0]
		obj.Approach = models.CloseApproach{
			Date:                approach.Date,
			MissDistanceKm:      optional(approach.MissDistance.Kilometers),
			RelativeVelocityKmh: optional(approach.RelativeVelocity.KilometersPerHour),
			OrbitingBody:        optional(approach.OrbitingBody),
		}
		if obj.Approach.Date == "" {
			obj.Approach.Date = bucketDate
		}
	}

	return obj, nil
}
