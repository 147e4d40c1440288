// util/zone.go
package util

import (
	"strconv"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
)

// Wire representation of the zones.
const (
	ZoneGreenroom = 0
	ZoneCore      = 1
)

// ZoneLabel translates the wire zone integer into its canonical label.
// Unknown zones fall back to the stringified integer.
func ZoneLabel(zone int) string {
	switch zone {
	case ZoneGreenroom:
		return config.GetString("zones.greenroomLabel")
	case ZoneCore:
		return config.GetString("zones.coreLabel")
	default:
		return strconv.Itoa(zone)
	}
}

// ParseZone accepts a zone label or a stringified wire integer and
// normalizes it to the wire integer.
func ParseZone(s string) (int, error) {
	switch s {
	case config.GetString("zones.greenroomLabel"):
		return ZoneGreenroom, nil
	case config.GetString("zones.coreLabel"):
		return ZoneCore, nil
	}
	zone, err := strconv.Atoi(s)
	if err != nil || (zone != ZoneGreenroom && zone != ZoneCore) {
		return 0, bff_errors.ErrValidation
	}
	return zone, nil
}

// NormalizeZoneTotals rewrites a total_per_zone map keyed by wire
// integers into one keyed by labels.
func NormalizeZoneTotals(totals map[string]any) map[string]any {
	normalized := make(map[string]any, len(totals))
	for key, value := range totals {
		if zone, err := strconv.Atoi(key); err == nil {
			normalized[ZoneLabel(zone)] = value
			continue
		}
		normalized[key] = value
	}
	return normalized
}

// NormalizeItemZones replaces the integer zone field of search result
// entries with the canonical label.
func NormalizeItemZones(items []map[string]any) {
	for _, item := range items {
		switch zone := item["zone"].(type) {
		case float64:
			item["zone"] = ZoneLabel(int(zone))
		case int:
			item["zone"] = ZoneLabel(zone)
		}
	}
}
