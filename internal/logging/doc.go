// Package logging centralizes slog construction and structured field
// conventions for crateprep.
//
// Two output formats are supported: a human-oriented console format and
// line-delimited JSON. Standardized field keys (component, run_id, file)
// keep batch runs greppable across both formats.
package logging
