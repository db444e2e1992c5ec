package statusbar

import (
	"testing"

	"tempwatch/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		st   models.TemperatureStatus
		want string
	}{
		{
			name: "unavailable renders empty",
			st:   models.TemperatureStatus{Available: false, Message: "Temperature monitoring not available."},
			want: "",
		},
		{
			name: "available without temperature renders empty",
			st:   models.TemperatureStatus{Available: true},
			want: "",
		},
		{
			name: "normal reading with stable trend",
			st: models.TemperatureStatus{
				Available:   true,
				Temperature: fptr(52.341),
				AlertLevel:  models.LevelNone,
				Trend:       models.TrendStable,
			},
			want: "🌡 52.3°C →",
		},
		{
			name: "rising trend",
			st: models.TemperatureStatus{
				Available:   true,
				Temperature: fptr(71.0),
				AlertLevel:  models.LevelWarning,
				AlertActive: true,
				Trend:       models.TrendRising,
			},
			want: "🌡 71.0°C ↑",
		},
		{
			name: "falling trend rounds to one decimal",
			st: models.TemperatureStatus{
				Available:   true,
				Temperature: fptr(65.58),
				Trend:       models.TrendFalling,
			},
			want: "🌡 65.6°C ↓",
		},
		{
			name: "unknown trend omits arrow",
			st: models.TemperatureStatus{
				Available:   true,
				Temperature: fptr(40.0),
				Trend:       models.TrendUnknown,
			},
			want: "🌡 40.0°C",
		},
		{
			name: "active emergency escalates icon",
			st: models.TemperatureStatus{
				Available:   true,
				Temperature: fptr(95.2),
				AlertLevel:  models.LevelEmergency,
				AlertActive: true,
				Trend:       models.TrendRising,
			},
			want: "🔥 95.2°C ↑",
		},
		{
			name: "emergency level without active alert keeps thermometer",
			st: models.TemperatureStatus{
				Available:   true,
				Temperature: fptr(95.2),
				AlertLevel:  models.LevelEmergency,
				AlertActive: false,
				Trend:       models.TrendRising,
			},
			want: "🌡 95.2°C ↑",
		},
		{
			name: "active critical keeps thermometer",
			st: models.TemperatureStatus{
				Available:   true,
				Temperature: fptr(85.0),
				AlertLevel:  models.LevelCritical,
				AlertActive: true,
				Trend:       models.TrendStable,
			},
			want: "🌡 85.0°C →",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Render(tc.st); got != tc.want {
				t.Fatalf("Render() = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		w    int
		want string
	}{
		{name: "fits untouched", in: "🌡 52.3°C →", w: 20, want: "🌡 52.3°C →"},
		{name: "exact width untouched", in: "abcde", w: 5, want: "abcde"},
		{name: "truncated with ellipsis", in: "abcdefgh", w: 5, want: "abcd…"},
		{name: "narrow width has no room for ellipsis", in: "abcdefgh", w: 3, want: "abc"},
		{name: "zero width", in: "abc", w: 0, want: ""},
		{name: "negative width", in: "abc", w: -1, want: ""},
		{name: "counts runes not bytes", in: "🌡 100.0°C ↑", w: 6, want: "🌡 100…"},
		{name: "empty input", in: "", w: 4, want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Fit(tc.in, tc.w); got != tc.want {
				t.Fatalf("Fit(%q, %d) = %q; want %q", tc.in, tc.w, got, tc.want)
			}
		})
	}
}
