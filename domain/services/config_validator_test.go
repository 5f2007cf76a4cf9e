package services

import (
	"testing"

	"qabum/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRiskConfig_ValidDocument(t *testing.T) {
	cfg, errs := ValidateRiskConfig(validConfigDocument())

	require.Empty(t, errs)
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 0.03, cfg.Global.DefaultMdr)
	assert.Equal(t, 12, cfg.Global.MaxPaybackMonths)
	assert.Equal(t, 0.022, cfg.SectorCaps[entities.SectorHighSensitivity].EthicalCap)
	assert.Len(t, cfg.SectorCaps, 3)
}

func TestValidateRiskConfig_StringNumbersWithCommaSeparator(t *testing.T) {
	doc := validConfigDocument()
	global := doc["global"].(map[string]any)
	global["defaultMdr"] = "0,03"
	global["defaultRepaymentRate"] = "0.10"
	global["minPaybackMonths"] = "1"
	caps := doc["sectorCaps"].(map[string]any)
	caps["STANDARD_PYME"] = map[string]any{"ethicalCap": "0,027"}

	cfg, errs := ValidateRiskConfig(doc)

	require.Empty(t, errs)
	assert.Equal(t, 0.03, cfg.Global.DefaultMdr)
	assert.Equal(t, 0.10, cfg.Global.DefaultRepaymentRate)
	assert.Equal(t, 0.027, cfg.SectorCaps[entities.SectorStandardPyme].EthicalCap)
}

func TestValidateRiskConfig_CollectsAllErrors(t *testing.T) {
	doc := validConfigDocument()
	doc["version"] = 0
	global := doc["global"].(map[string]any)
	global["defaultMdr"] = 1.5
	global["maxAdvanceMultipleOfAvgMonthlySales"] = 11
	global["minPaybackMonths"] = 0
	global["minActiveMonthsLastN"] = 99
	caps := doc["sectorCaps"].(map[string]any)
	delete(caps, "HIGH_MARGIN_SERVICE")
	caps["HIGH_SENSITIVITY"] = map[string]any{"ethicalCap": -0.1}

	cfg, errs := ValidateRiskConfig(doc)

	assert.Nil(t, cfg)
	assert.Contains(t, errs, "version must be an integer >= 1")
	assert.Contains(t, errs, "defaultMdr must be a finite number between 0 and 1")
	assert.Contains(t, errs, "maxAdvanceMultipleOfAvgMonthlySales must be a number > 0 and <= 10")
	assert.Contains(t, errs, "minPaybackMonths must be an integer between 1 and 60")
	assert.Contains(t, errs, "minActiveMonthsLastN must be an integer between 0 and 24")
	assert.Contains(t, errs, "Missing config for sector: HIGH_MARGIN_SERVICE")
	assert.Contains(t, errs, "Sector HIGH_SENSITIVITY: ethicalCap must be a finite number between 0 and 1")
	assert.GreaterOrEqual(t, len(errs), 7)
}

func TestValidateRiskConfig_PaybackOrdering(t *testing.T) {
	doc := validConfigDocument()
	global := doc["global"].(map[string]any)
	global["minPaybackMonths"] = 12
	global["maxPaybackMonths"] = 6

	cfg, errs := ValidateRiskConfig(doc)

	assert.Nil(t, cfg)
	assert.Contains(t, errs, "maxPaybackMonths must be >= minPaybackMonths")
}

func TestValidateRiskConfig_SectorMultipleOverride(t *testing.T) {
	doc := validConfigDocument()
	caps := doc["sectorCaps"].(map[string]any)
	caps["STANDARD_PYME"] = map[string]any{
		"ethicalCap":                          0.027,
		"maxAdvanceMultipleOfAvgMonthlySales": 2.5,
	}

	cfg, errs := ValidateRiskConfig(doc)

	require.Empty(t, errs)
	override := cfg.SectorCaps[entities.SectorStandardPyme].MaxAdvanceMultipleOfAvgMonthlySales
	require.NotNil(t, override)
	assert.Equal(t, 2.5, *override)

	// Out-of-range override is rejected
	caps["STANDARD_PYME"] = map[string]any{
		"ethicalCap":                          0.027,
		"maxAdvanceMultipleOfAvgMonthlySales": 12,
	}
	cfg, errs = ValidateRiskConfig(doc)
	assert.Nil(t, cfg)
	assert.Contains(t, errs, "Sector STANDARD_PYME: maxAdvanceMultipleOfAvgMonthlySales must be > 0 and <= 10")
}

func TestValidateRiskConfig_NilAndMissingSections(t *testing.T) {
	cfg, errs := ValidateRiskConfig(nil)
	assert.Nil(t, cfg)
	assert.Equal(t, []string{"Invalid input object"}, errs)

	cfg, errs = ValidateRiskConfig(map[string]any{"version": 1})
	assert.Nil(t, cfg)
	assert.Contains(t, errs, "Missing global config")
	assert.Contains(t, errs, "Missing sectorCaps")
}

func TestValidateRiskConfig_RoundTripIsStable(t *testing.T) {
	first, errs := ValidateRiskConfig(validConfigDocument())
	require.Empty(t, errs)

	// Re-validate the normalized config rendered back to a document
	doc := map[string]any{
		"version":   first.Version,
		"updatedAt": first.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		"global": map[string]any{
			"defaultMdr":                          first.Global.DefaultMdr,
			"defaultQabumMarginCap":               first.Global.DefaultQabumMarginCap,
			"defaultRepaymentRate":                first.Global.DefaultRepaymentRate,
			"maxAdvanceMultipleOfAvgMonthlySales": first.Global.MaxAdvanceMultipleOfAvgMonthlySales,
			"minPaybackMonths":                    first.Global.MinPaybackMonths,
			"maxPaybackMonths":                    first.Global.MaxPaybackMonths,
			"minPlatformAgeMonths":                first.Global.MinPlatformAgeMonths,
			"minActiveMonthsLastN":                first.Global.MinActiveMonthsLastN,
		},
		"sectorCaps": map[string]any{
			"HIGH_SENSITIVITY":    map[string]any{"ethicalCap": first.SectorCaps[entities.SectorHighSensitivity].EthicalCap},
			"STANDARD_PYME":       map[string]any{"ethicalCap": first.SectorCaps[entities.SectorStandardPyme].EthicalCap},
			"HIGH_MARGIN_SERVICE": map[string]any{"ethicalCap": first.SectorCaps[entities.SectorHighMarginService].EthicalCap},
		},
	}

	second, errs := ValidateRiskConfig(doc)
	require.Empty(t, errs)
	assert.Equal(t, first, second)
}
