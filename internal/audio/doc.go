// Package audio holds the decoded-PCM representation used by the pipeline and the
// codec and signal helpers around it: WAV and MP3 decoding, WAV encoding,
// downmix, linear resampling, gain and energy-based silence splitting.
//
// All clips are normalized to 16-bit signed samples on decode.
package audio
