// Package statusbar renders the monitor snapshot as a short display token
// for tmux/prompt style status lines.
package statusbar

import (
	"fmt"

	"tempwatch/internal/models"
)

const (
	iconThermometer = "🌡"
	iconFlame       = "🔥"

	arrowRising  = "↑"
	arrowFalling = "↓"
	arrowStable  = "→"

	ellipsis = "…"
)

// Render formats a status snapshot as a short token such as "🌡 72.5°C ↑".
// The icon escalates to a flame while an emergency alert is active. An
// unavailable snapshot renders as the empty string so the consuming status
// line can drop the segment entirely.
func Render(st models.TemperatureStatus) string {
	if !st.Available || st.Temperature == nil {
		return ""
	}

	icon := iconThermometer
	if st.AlertActive && st.AlertLevel == models.LevelEmergency {
		icon = iconFlame
	}

	token := fmt.Sprintf("%s %.1f°C", icon, *st.Temperature)
	if arrow := trendArrow(st.Trend); arrow != "" {
		token += " " + arrow
	}
	return token
}

func trendArrow(t models.Trend) string {
	switch t {
	case models.TrendRising:
		return arrowRising
	case models.TrendFalling:
		return arrowFalling
	case models.TrendStable:
		return arrowStable
	default:
		// unknown gets no arrow
		return ""
	}
}

// Fit truncates s to at most w runes, marking the cut with an ellipsis when
// there is room for one. Width is counted in runes, not bytes; the token is
// emoji-heavy enough that byte slicing would split glyphs.
func Fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-1]) + ellipsis
}
