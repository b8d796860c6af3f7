// Package encoding builds and executes ffmpeg conversion commands.
//
// The argument vector is assembled deterministically from a plan.Decision so
// repeated runs over the same input produce identical commands. Stderr is
// captured for error reporting; ffmpeg is otherwise silenced.
package encoding
