// Package services provides shared error classification and context helpers
// used across the conversion pipeline.
//
// Errors produced by pipeline steps are tagged with one of the exported
// sentinel errors so the caller can distinguish configuration problems,
// unusable input files, and external tool failures when reporting results.
package services
