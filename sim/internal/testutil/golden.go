// Package testutil provides shared test infrastructure for the terminal
// simulator. It holds the golden scenario types and assertion helpers used
// across the sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_terminal.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one deterministic terminal scenario and its expected outcome.
type GoldenTestCase struct {
	Name                string        `json:"name"`
	Seed                int64         `json:"seed"`
	Duration            float64       `json:"duration"`
	MeanInterArrival    float64       `json:"mean_inter_arrival"`
	TransferTime        float64       `json:"container_transfer_time"`
	TruckCycleTime      float64       `json:"truck_cycle_time"`
	ContainersPerVessel int           `json:"containers_per_vessel"`
	Berths              int           `json:"berths"`
	Cranes              int           `json:"cranes"`
	Trucks              int           `json:"trucks"`
	ArrivalProcess      string        `json:"arrival_process"`
	Metrics             GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected trace summary of a golden case.
type GoldenMetrics struct {
	// Exact match counts
	VesselsArrived      int `json:"vessels_arrived"`
	VesselsBerthed      int `json:"vessels_berthed"`
	VesselsDeparted     int `json:"vessels_departed"`
	ContainersCraned    int `json:"containers_craned"`
	ContainersDelivered int `json:"containers_delivered"`

	// Derived from the simulation clock
	EndTime        float64 `json:"end_time"`
	MeanBerthWait  float64 `json:"mean_berth_wait"`
	MaxBerthWait   float64 `json:"max_berth_wait"`
	MeanTurnaround float64 `json:"mean_turnaround"`
}

// LoadGoldenDataset loads the golden scenarios from the repo testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_terminal.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
