// Package pipeline orchestrates the batch conversion run: discover candidate
// files, probe each one, select by marker tag, plan the target format, and
// drive ffmpeg, mirroring input-relative paths into the output root.
//
// Processing is single-threaded and sequential; one file's failure is
// recorded and the batch moves on. A lock file in the output root keeps two
// runs from interleaving writes into the same tree.
package pipeline
