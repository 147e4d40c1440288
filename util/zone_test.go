// util/zone_test.go
package util_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/util"
)

func TestMain(m *testing.M) {
	_ = config.InitConfig()
	os.Exit(m.Run())
}

func TestZoneLabel(t *testing.T) {
	assert.Equal(t, "greenroom", util.ZoneLabel(util.ZoneGreenroom))
	assert.Equal(t, "core", util.ZoneLabel(util.ZoneCore))

	// Unknown zones fall back to the stringified integer.
	assert.Equal(t, "7", util.ZoneLabel(7))
}

func TestParseZone(t *testing.T) {
	zone, err := util.ParseZone("greenroom")
	assert.NoError(t, err)
	assert.Equal(t, util.ZoneGreenroom, zone)

	zone, err = util.ParseZone("core")
	assert.NoError(t, err)
	assert.Equal(t, util.ZoneCore, zone)

	zone, err = util.ParseZone("1")
	assert.NoError(t, err)
	assert.Equal(t, util.ZoneCore, zone)

	_, err = util.ParseZone("basement")
	assert.ErrorIs(t, err, bff_errors.ErrValidation)

	_, err = util.ParseZone("3")
	assert.ErrorIs(t, err, bff_errors.ErrValidation)
}

func TestNormalizeZoneTotals(t *testing.T) {
	totals := util.NormalizeZoneTotals(map[string]any{
		"0":     10,
		"1":     4,
		"other": 1,
	})

	assert.Equal(t, map[string]any{
		"greenroom": 10,
		"core":      4,
		"other":     1,
	}, totals)
}

func TestNormalizeItemZones(t *testing.T) {
	items := []map[string]any{
		{"id": "a", "zone": float64(0)},
		{"id": "b", "zone": 1},
		{"id": "c", "zone": "core"},
	}

	util.NormalizeItemZones(items)

	assert.Equal(t, "greenroom", items[0]["zone"])
	assert.Equal(t, "core", items[1]["zone"])
	assert.Equal(t, "core", items[2]["zone"])
}
