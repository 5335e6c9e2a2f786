//go:build !audiodebug

package audio

const debugAssertions = false
