// Package analysis measures the peak sample level of audio files for
// volume normalization.
//
// WAV, AIFF, MP3, and Ogg Vorbis files are decoded natively; containers
// without a native decoder (flac, aac) fall back to ffmpeg's volumedetect
// filter. Either way the result is the peak level in dBFS.
package analysis
