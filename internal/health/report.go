package health

import (
	"github.com/devicepulse/agent/internal/netinfo"
	"github.com/devicepulse/agent/internal/system"
)

// Report is the consistent tuple handed to the recommendation layer and the
// presentation surface: the verdict was computed from exactly this sample.
type Report struct {
	Verdict         Verdict                 `json:"verdict"`
	Sample          system.MetricSample     `json:"sample"`
	Interfaces      []netinfo.InterfaceInfo `json:"interfaces"`
	Recommendations []Recommendation        `json:"recommendations,omitempty"`
}
