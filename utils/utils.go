// Package utils collects the small byte/int helpers shared across the
// extraction pipeline, grounded on ga's utils.go/utils package
// (MaxInt, Bytes2String, BytesEqual); CheckGlobalArgs and ArgsOpt are
// not carried over since config.FromCommand (config.go) already covers
// flag resolution for this tool.
package utils

import "unsafe"

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Bytes2String reinterprets b's backing array as a string without
// copying. Callers must not mutate b after the returned string escapes,
// since the string header now aliases b's storage.
func Bytes2String(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// BytesEqual compares a and b via Bytes2String, avoiding the copy
// bytes.Equal would otherwise need to box its arguments for ==.
func BytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return Bytes2String(a) == Bytes2String(b)
}
