// Package defaults centralizes timeout and interval constants used across
// fwcheck components so operational tuning happens in one place.
package defaults
