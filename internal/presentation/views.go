package presentation

import (
	"strconv"

	"astrocards/internal/domain"
)

// Views are the derived, read-only render models of one record.
type Views struct {
	Location     string           `json:"location"`
	DateLine     string           `json:"date_line"`
	Events       []EventCard      `json:"events"`
	MoonPhase    MoonPhaseCard    `json:"moon_phase"`
	Illumination IlluminationCard `json:"illumination"`
}

// EventCard is one of the four sun/moon rise/set cards.
type EventCard struct {
	Label string `json:"label"`
	Time  string `json:"time"`
	Icon  string `json:"icon"`
}

// MoonPhaseCard shows the phase name and its icon.
type MoonPhaseCard struct {
	Phase string `json:"phase"`
	Icon  string `json:"icon"`
	Known bool   `json:"known"`
}

// IlluminationCard shows the illumination percentage as text and as a bar.
// BarWidth is not clamped: 140 renders wider than the track.
type IlluminationCard struct {
	Percent  float64 `json:"percent"`
	Text     string  `json:"text"`
	BarWidth string  `json:"bar_width"`
}

// BuildViews derives every card from a record.
func BuildViews(r domain.AstroRecord) Views {
	return Views{
		Location: LocationSummary(r),
		DateLine: "Date: " + r.Date,
		Events: []EventCard{
			eventCard(EventSunrise, r.Astro.Sunrise),
			eventCard(EventSunset, r.Astro.Sunset),
			eventCard(EventMoonrise, r.Astro.Moonrise),
			eventCard(EventMoonset, r.Astro.Moonset),
		},
		MoonPhase:    PhaseCard(r.Astro.MoonPhase),
		Illumination: Illumination(r.Astro.MoonIllumination),
	}
}

// LocationSummary renders "name, region, country".
func LocationSummary(r domain.AstroRecord) string {
	return r.Name + ", " + r.Region + ", " + r.Country
}

func eventCard(label, at string) EventCard {
	return EventCard{Label: label, Time: at, Icon: EventIcon(label)}
}

// PhaseCard builds the moon phase card, falling back to UnknownPhaseIcon.
func PhaseCard(phase domain.MoonPhase) MoonPhaseCard {
	return MoonPhaseCard{
		Phase: phase.String(),
		Icon:  PhaseIcon(phase),
		Known: phase.Known(),
	}
}

// Illumination builds the illumination card.
func Illumination(percent float64) IlluminationCard {
	p := FormatPercent(percent)
	return IlluminationCard{
		Percent:  percent,
		Text:     p,
		BarWidth: p,
	}
}

// FormatPercent renders 87 as "87%" and 87.5 as "87.5%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
