package services

import (
	"fmt"
	"time"

	"qabum/domain/entities"
	"qabum/domain/utils"
)

// ValidateRiskConfig sanitizes and range-checks an admin-submitted
// configuration document. Numeric fields tolerate string input with either
// '.' or ',' decimal separators. All fields are validated independently:
// on failure the complete ordered list of violations is returned and no
// partial config is ever produced.
func ValidateRiskConfig(input map[string]any) (*entities.RiskConfig, []string) {
	if input == nil {
		return nil, []string{"Invalid input object"}
	}

	var errs []string

	version, ok := utils.CoerceInt(input["version"])
	if !ok || version < 1 {
		errs = append(errs, "version must be an integer >= 1")
	}

	global, globalErrs := validateGlobalParams(input["global"])
	errs = append(errs, globalErrs...)

	sectorCaps, capErrs := validateSectorCaps(input["sectorCaps"])
	errs = append(errs, capErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	cfg := &entities.RiskConfig{
		Version:    version,
		Global:     *global,
		SectorCaps: sectorCaps,
	}
	// updatedAt passes through when parseable; the resolver stamps it on
	// every write anyway
	if raw, ok := input["updatedAt"].(string); ok {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			cfg.UpdatedAt = ts
		}
	}
	if ts, ok := input["updatedAt"].(time.Time); ok {
		cfg.UpdatedAt = ts
	}

	return cfg, nil
}

func validateGlobalParams(raw any) (*entities.GlobalRiskParams, []string) {
	global, ok := raw.(map[string]any)
	if !ok || global == nil {
		return nil, []string{"Missing global config"}
	}

	var errs []string
	clean := &entities.GlobalRiskParams{}

	rateField := func(name string) float64 {
		v, ok := utils.CoerceDecimal(global[name])
		if !ok || v < 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("%s must be a finite number between 0 and 1", name))
			return 0
		}
		return v
	}

	clean.DefaultMdr = rateField("defaultMdr")
	clean.DefaultQabumMarginCap = rateField("defaultQabumMarginCap")
	clean.DefaultRepaymentRate = rateField("defaultRepaymentRate")

	maxMultiple, ok := utils.CoerceDecimal(global["maxAdvanceMultipleOfAvgMonthlySales"])
	if !ok || maxMultiple <= 0 || maxMultiple > 10 {
		errs = append(errs, "maxAdvanceMultipleOfAvgMonthlySales must be a number > 0 and <= 10")
	} else {
		clean.MaxAdvanceMultipleOfAvgMonthlySales = maxMultiple
	}

	minPayback, minPaybackOK := utils.CoerceInt(global["minPaybackMonths"])
	if !minPaybackOK || minPayback < 1 || minPayback > 60 {
		errs = append(errs, "minPaybackMonths must be an integer between 1 and 60")
	} else {
		clean.MinPaybackMonths = minPayback
	}

	maxPayback, maxPaybackOK := utils.CoerceInt(global["maxPaybackMonths"])
	switch {
	case !maxPaybackOK || maxPayback > 60:
		errs = append(errs, "maxPaybackMonths must be an integer <= 60")
	case minPaybackOK && maxPayback < minPayback:
		errs = append(errs, "maxPaybackMonths must be >= minPaybackMonths")
	default:
		clean.MaxPaybackMonths = maxPayback
	}

	minAge, ok := utils.CoerceInt(global["minPlatformAgeMonths"])
	if !ok || minAge < 0 || minAge > 60 {
		errs = append(errs, "minPlatformAgeMonths must be an integer between 0 and 60")
	} else {
		clean.MinPlatformAgeMonths = minAge
	}

	minActive, ok := utils.CoerceInt(global["minActiveMonthsLastN"])
	if !ok || minActive < 0 || minActive > 24 {
		errs = append(errs, "minActiveMonthsLastN must be an integer between 0 and 24")
	} else {
		clean.MinActiveMonthsLastN = minActive
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return clean, nil
}

func validateSectorCaps(raw any) (map[entities.Sector]entities.SectorCap, []string) {
	caps, ok := raw.(map[string]any)
	if !ok || caps == nil {
		return nil, []string{"Missing sectorCaps"}
	}

	var errs []string
	clean := make(map[entities.Sector]entities.SectorCap, len(entities.KnownSectors()))

	for _, sector := range entities.KnownSectors() {
		rawCap, ok := caps[string(sector)].(map[string]any)
		if !ok || rawCap == nil {
			errs = append(errs, fmt.Sprintf("Missing config for sector: %s", sector))
			continue
		}

		var sectorClean entities.SectorCap

		ethicalCap, ok := utils.CoerceDecimal(rawCap["ethicalCap"])
		if !ok || ethicalCap < 0 || ethicalCap > 1 {
			errs = append(errs, fmt.Sprintf("Sector %s: ethicalCap must be a finite number between 0 and 1", sector))
		} else {
			sectorClean.EthicalCap = ethicalCap
		}

		if override, present := rawCap["maxAdvanceMultipleOfAvgMonthlySales"]; present && override != nil && override != "" {
			multiple, ok := utils.CoerceDecimal(override)
			if !ok || multiple <= 0 || multiple > 10 {
				errs = append(errs, fmt.Sprintf("Sector %s: maxAdvanceMultipleOfAvgMonthlySales must be > 0 and <= 10", sector))
			} else {
				sectorClean.MaxAdvanceMultipleOfAvgMonthlySales = &multiple
			}
		}

		clean[sector] = sectorClean
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return clean, nil
}
