package game

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
	StepsPerUpdate int // headless steps per UpdateHeadless call
}

// controlsLegend is drawn along the bottom edge of the window.
const controlsLegend = "LMB spawn | RMB storm | Space pause | C clear | G grid | H panel | F11 fullscreen"
