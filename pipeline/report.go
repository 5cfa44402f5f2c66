// SPDX-License-Identifier: MIT

package pipeline

import (
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/diffentropy/mutualinfo"
)

// Report holds every quantity computed for one checkpoint. Entropies that
// are undefined are NaN.
type Report struct {
	Checkpoint string `yaml:"checkpoint"`
	Points     int    `yaml:"points"`
	Dim        int    `yaml:"dim"`

	Shannon float64 `yaml:"shannon_entropy"`

	Eigenvalues       int              `yaml:"eigenvalues"`
	EigenvaluesCached bool             `yaml:"eigenvalues_cached"`
	Counts            []ThresholdCount `yaml:"counts"`

	VonNeumann float64      `yaml:"von_neumann_entropy"`
	Sweep      []SweepEntry `yaml:"sweep"`

	Labels    *LabelMI        `yaml:"mi_labels,omitempty"`
	Inputs    *InputMI        `yaml:"mi_inputs,omitempty"`
	Extrema   *ExtremaSummary `yaml:"extrema,omitempty"`
	Resampled []ResampleEntry `yaml:"resampled,omitempty"`

	Warnings []string `yaml:"warnings,omitempty"`
}

// ThresholdCount is the number of eigenvalues above Threshold for t = 1
// and for the configured t.
type ThresholdCount struct {
	Threshold float64 `yaml:"threshold"`
	T1        int     `yaml:"t1"`
	T         int     `yaml:"t"`
}

// SweepEntry is H(Z) at one trivial threshold.
type SweepEntry struct {
	Threshold float64 `yaml:"threshold"`
	Entropy   float64 `yaml:"entropy"`
}

// MIEntry summarizes one mutualinfo.Result.
type MIEntry struct {
	MI          float64            `yaml:"mi"`
	HZ          float64            `yaml:"h_z"`
	HZGivenY    float64            `yaml:"h_z_given_y"`
	Anomaly     bool               `yaml:"anomaly,omitempty"`
	Degenerate  []string           `yaml:"degenerate,omitempty"`
	Conditional map[string]float64 `yaml:"conditional,omitempty"`
}

func newMIEntry(r *mutualinfo.Result) *MIEntry {
	if r == nil {
		return nil
	}
	return &MIEntry{
		MI:          r.MI,
		HZ:          r.HZ,
		HZGivenY:    r.HZGivenY,
		Anomaly:     r.Anomaly,
		Degenerate:  r.Degenerate,
		Conditional: r.Conditional,
	}
}

// LabelMI holds the estimates of I(Z;Y).
type LabelMI struct {
	Simple       *MIEntry `yaml:"simple,omitempty"`
	RandomSample *MIEntry `yaml:"random_sample,omitempty"`
	Shannon      *MIEntry `yaml:"shannon,omitempty"`
}

// InputMI holds the estimates of I(Z;X).
type InputMI struct {
	Diffusion *MIEntry `yaml:"diffusion,omitempty"`
	Shannon   *MIEntry `yaml:"shannon,omitempty"`
	Clusters  int      `yaml:"clusters"`
	Reused    bool     `yaml:"clusters_reused"`
}

// ExtremaSummary lists extrema as input rows and their spread.
type ExtremaSummary struct {
	Indices      []int   `yaml:"indices"`
	FiedlerValue float64 `yaml:"fiedler_value"`
	DistanceMean float64 `yaml:"distance_mean"`
	DistanceStd  float64 `yaml:"distance_std"`
}

// ResampleEntry is the mean and population standard deviation of H(Z)
// over random batches at one trivial threshold.
type ResampleEntry struct {
	Threshold float64 `yaml:"threshold"`
	Mean      float64 `yaml:"mean"`
	Std       float64 `yaml:"std"`
	Batches   int     `yaml:"batches"`
}

// MarshalReports renders reports as a YAML document.
func MarshalReports(reports []*Report) ([]byte, error) {
	return yaml.Marshal(struct {
		Reports []*Report `yaml:"reports"`
	}{reports})
}
