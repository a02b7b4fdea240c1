package plot

import "github.com/raykavin/launchdash/pkg/core"

// siteOption is one entry of the site dropdown
type siteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// sliderOptions configures the payload range slider
type sliderOptions struct {
	Min   float64            `json:"min"`
	Max   float64            `json:"max"`
	Step  float64            `json:"step"`
	Value core.PayloadRange  `json:"value"`
	Marks map[string]float64 `json:"marks"`
}

// controlOptions describes the dashboard controls
type controlOptions struct {
	Title       string        `json:"title"`
	Sites       []siteOption  `json:"sites"`
	DefaultSite string        `json:"default_site"`
	Payload     sliderOptions `json:"payload"`
}
