// Package media probes audio files before they are shipped to the
// inference sidecars. Only WAV is probed; other containers pass through
// unprobed since decoding is the sidecars' job.
package media
