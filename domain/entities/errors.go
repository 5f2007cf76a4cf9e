package entities

import "errors"

var (
	// ErrStoreNotFound is returned when a store id has no configuration.
	// The engine never runs against a missing store.
	ErrStoreNotFound = errors.New("store configuration not found")

	// ErrConfigNotFound is returned by reads that require a persisted
	// configuration and must not fall back to defaults
	ErrConfigNotFound = errors.New("risk configuration not found")

	// ErrInconsistentRateConfig is returned when the MDR plus the fixed
	// margin already exceed the sector's ethical cap, so no repayment
	// reduction can satisfy it. Not recoverable by rate adjustment.
	ErrInconsistentRateConfig = errors.New("inconsistent rate configuration: mdr plus margin exceed the ethical cap")

	// ErrConfigVersionConflict is returned when a configuration write
	// loses the compare-and-swap on the version it read
	ErrConfigVersionConflict = errors.New("risk configuration was modified concurrently")
)
