package domain

// MoonPhase is the name of a lunar phase as reported by the provider.
// The eight constants below are the closed set the UI knows how to draw;
// any other value is kept verbatim but is not Known.
type MoonPhase string

const (
	NewMoon        MoonPhase = "New Moon"
	WaxingCrescent MoonPhase = "Waxing Crescent"
	FirstQuarter   MoonPhase = "First Quarter"
	WaxingGibbous  MoonPhase = "Waxing Gibbous"
	FullMoon       MoonPhase = "Full Moon"
	WaningGibbous  MoonPhase = "Waning Gibbous"
	LastQuarter    MoonPhase = "Last Quarter"
	WaningCrescent MoonPhase = "Waning Crescent"
)

// MoonPhases lists every known phase in lunation order.
var MoonPhases = []MoonPhase{
	NewMoon,
	WaxingCrescent,
	FirstQuarter,
	WaxingGibbous,
	FullMoon,
	WaningGibbous,
	LastQuarter,
	WaningCrescent,
}

// Known reports whether p is one of the eight enumerated phases.
func (p MoonPhase) Known() bool {
	switch p {
	case NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous,
		FullMoon, WaningGibbous, LastQuarter, WaningCrescent:
		return true
	}
	return false
}

func (p MoonPhase) String() string {
	return string(p)
}
