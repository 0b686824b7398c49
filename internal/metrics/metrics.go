// Package metrics exposes runtime counters via expvar.
package metrics

import "expvar"

var (
	FamiliesRegistered = expvar.NewInt("families_registered")
	ResolutionsTotal   = expvar.NewInt("resolutions_total")
	ResolutionFailures = expvar.NewInt("resolution_failures")

	// FailuresByKind counts rejected resolutions per failure kind.
	FailuresByKind = expvar.NewMap("resolution_failures_by_kind")
)
