// Package model contains the shared data types and the capability
// interfaces used across the location resolution pipeline.
//
// The types in this package only depend on the standard library and
// on [github.com/lengocduc195/geovisit/internal/optional], so every
// other package can import them without import cycles.
package model
