package main

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Noofbiz/trafficsigns/datasets"
)

func TestPixelStats(t *testing.T) {
	// 2 samples of 1x1 pixels with 3 channels.
	ds := &datasets.Dataset{
		Images:   []float32{0, 0.5, 1, 1, 0.5, 1},
		Labels:   []datasets.Label{0, 1},
		Height:   1,
		Width:    1,
		Channels: 3,
	}
	want := []channelStats{
		{Mean: 0.5, StdDev: math.Sqrt(0.5)},
		{Mean: 0.5, StdDev: 0},
		{Mean: 1, StdDev: 0},
	}
	got := pixelStats(ds)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("pixelStats mismatch (-want +got):\n%s", diff)
	}
}
