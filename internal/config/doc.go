// Package config loads, normalizes, and validates crateprep configuration.
//
// Configuration lives in a TOML file (default ~/.config/crateprep/config.toml,
// or ./crateprep.toml in the working directory). Every run works from a fully
// normalized Config: paths expanded to absolute form, defaults applied, and
// values validated before the pipeline starts.
package config
