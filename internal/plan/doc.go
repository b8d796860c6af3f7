// Package plan decides what a probed source file converts to.
//
// Lossless sources (aiff, flac, wav) target AIFF PCM; lossy sources
// (mp3, ogg, aac) target MP3. Files that already satisfy the deck
// compatibility limits are skipped rather than re-encoded.
package plan
