//go:build !gst

package main

import "testing"

func TestSourceOpenerGstNeedsTag(t *testing.T) {
	if _, err := sourceOpener("gst"); err == nil {
		t.Error(`sourceOpener("gst") = nil error without the gst tag`)
	}
}
