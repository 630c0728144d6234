package presentation

import "astrocards/internal/domain"

const iconBase = "/static/icons/"

// Event labels, in card order.
const (
	EventSunrise  = "Sunrise"
	EventSunset   = "Sunset"
	EventMoonrise = "Moonrise"
	EventMoonset  = "Moonset"
)

var eventIcons = map[string]string{
	EventSunrise:  iconBase + "sunrise.svg",
	EventSunset:   iconBase + "sunset.svg",
	EventMoonrise: iconBase + "moonrise.svg",
	EventMoonset:  iconBase + "moonset.svg",
}

// UnknownPhaseIcon is drawn for phase names outside the enumeration.
const UnknownPhaseIcon = iconBase + "phases/unknown-phase.svg"

var phaseIcons = map[domain.MoonPhase]string{
	domain.NewMoon:        iconBase + "phases/new-moon.svg",
	domain.WaxingCrescent: iconBase + "phases/waxing-crescent.svg",
	domain.FirstQuarter:   iconBase + "phases/first-quarter.svg",
	domain.WaxingGibbous:  iconBase + "phases/waxing-gibbous.svg",
	domain.FullMoon:       iconBase + "phases/full-moon.svg",
	domain.WaningGibbous:  iconBase + "phases/waning-gibbous.svg",
	domain.LastQuarter:    iconBase + "phases/last-quarter.svg",
	domain.WaningCrescent: iconBase + "phases/waning-crescent.svg",
}

// EventIcon returns the static icon for an event label.
func EventIcon(label string) string {
	return eventIcons[label]
}

// PhaseIcon returns the icon for a moon phase, or UnknownPhaseIcon.
func PhaseIcon(phase domain.MoonPhase) string {
	if icon, ok := phaseIcons[phase]; ok {
		return icon
	}
	return UnknownPhaseIcon
}
