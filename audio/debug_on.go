//go:build audiodebug

package audio

const debugAssertions = true
