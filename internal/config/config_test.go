package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"tempwatch/internal/logger"
	"tempwatch/internal/models"
)

// resetViper puts the global viper into the post-Load state without reading
// a file. Tests share viper's package state, so none of them run parallel.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	registerDefaults()
	t.Cleanup(viper.Reset)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	resetViper(t)
	return NewStore(logger.Nop())
}

func TestDefaults(t *testing.T) {
	s := newTestStore(t)

	mon := s.Monitor()
	if mon.Interval != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", mon.Interval)
	}
	if mon.HistorySize != 60 {
		t.Errorf("HistorySize = %d, want 60", mon.HistorySize)
	}
	if mon.Cooldown != 300*time.Second {
		t.Errorf("Cooldown = %v, want 300s", mon.Cooldown)
	}
	if !mon.AlertsEnabled {
		t.Error("AlertsEnabled = false, want true")
	}
	if mon.Thresholds != (models.ThresholdSet{Warning: 70, Critical: 80, Emergency: 90}) {
		t.Errorf("Thresholds = %+v, want defaults", mon.Thresholds)
	}

	auth := s.Auth()
	if auth.SigningKey != "" {
		t.Errorf("SigningKey = %q, want empty (service applies its fallback)", auth.SigningKey)
	}
	if auth.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", auth.TokenTTL)
	}

	src := s.Source()
	if src.Kind != "hwmon" {
		t.Errorf("Kind = %q, want hwmon", src.Kind)
	}
	if src.SimStartC != 45 || src.SimAmplitudeC != 40 || src.SimPeriod != 10*time.Minute {
		t.Errorf("simulator defaults = %+v", src)
	}
	if src.StaticC != 50 {
		t.Errorf("StaticC = %v, want 50", src.StaticC)
	}

	if got := viper.GetString(KeyPort); got != "8080" {
		t.Errorf("port = %q, want 8080", got)
	}
	if got := viper.GetString(KeyLogLevel); got != logger.InfoLevel {
		t.Errorf("log level = %q, want info", got)
	}
	if got := viper.GetString(KeyDBPath); got != "tempwatch.db" {
		t.Errorf("db path = %q, want tempwatch.db", got)
	}
}

func TestMonitorMinimumsEnforced(t *testing.T) {
	s := newTestStore(t)

	viper.Set(KeyCheckInterval, 1)
	viper.Set(KeyHistorySize, 3)

	mon := s.Monitor()
	if mon.Interval != MinCheckIntervalSeconds*time.Second {
		t.Errorf("Interval = %v, want clamped to %ds", mon.Interval, MinCheckIntervalSeconds)
	}
	if mon.HistorySize != MinHistorySize {
		t.Errorf("HistorySize = %d, want clamped to %d", mon.HistorySize, MinHistorySize)
	}
}

func TestMonitorCooldown(t *testing.T) {
	t.Run("negative falls back to default", func(t *testing.T) {
		s := newTestStore(t)
		viper.Set(KeyAlertCooldown, -10)
		if got := s.Monitor().Cooldown; got != DefaultAlertCooldownSeconds*time.Second {
			t.Errorf("Cooldown = %v, want default", got)
		}
	})

	t.Run("zero means alert every poll", func(t *testing.T) {
		s := newTestStore(t)
		viper.Set(KeyAlertCooldown, 0)
		if got := s.Monitor().Cooldown; got != 0 {
			t.Errorf("Cooldown = %v, want 0", got)
		}
	})
}

func TestThresholdPerKeyFallback(t *testing.T) {
	s := newTestStore(t)

	viper.Set(KeyThresholdWarning, "not-a-number")
	viper.Set(KeyThresholdCritical, 85)

	got := s.Thresholds()
	want := models.ThresholdSet{Warning: 70, Critical: 85, Emergency: 90}
	if got != want {
		t.Errorf("Thresholds = %+v, want %+v", got, want)
	}
}

func TestUnorderedThresholdsRejectedWholesale(t *testing.T) {
	tests := []struct {
		name string
		set  func()
	}{
		{"warning above critical", func() { viper.Set(KeyThresholdWarning, 95) }},
		{"critical above emergency", func() { viper.Set(KeyThresholdCritical, 99) }},
		{"equal boundaries", func() {
			viper.Set(KeyThresholdWarning, 80)
			viper.Set(KeyThresholdCritical, 80)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			tt.set()
			if got := s.Thresholds(); got != DefaultThresholds() {
				t.Errorf("Thresholds = %+v, want defaults for unordered override", got)
			}
		})
	}
}

func TestAlertsEnabledParse(t *testing.T) {
	t.Run("string false", func(t *testing.T) {
		s := newTestStore(t)
		viper.Set(KeyAlertsEnabled, "false")
		if s.Monitor().AlertsEnabled {
			t.Error("AlertsEnabled = true, want false")
		}
	})

	t.Run("garbage keeps default", func(t *testing.T) {
		s := newTestStore(t)
		viper.Set(KeyAlertsEnabled, "maybe")
		if !s.Monitor().AlertsEnabled {
			t.Error("AlertsEnabled = false, want default true")
		}
	})
}

func TestAuthTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{"custom duration", "30m", 30 * time.Minute},
		{"unparsable falls back", "bananas", time.Hour},
		{"non-positive falls back", "-5m", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			viper.Set(KeyAuthTokenTTL, tt.ttl)
			if got := s.Auth().TokenTTL; got != tt.want {
				t.Errorf("TokenTTL = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSourceSection(t *testing.T) {
	s := newTestStore(t)

	viper.Set(KeySourceKind, "simulator")
	viper.Set(KeySourceHwmonSensor, "coretemp")
	viper.Set(KeySimStartC, 50)
	viper.Set(KeySimAmplitudeC, 10)
	viper.Set(KeySimPeriod, "2m")
	viper.Set(KeyStaticC, 60.5)

	src := s.Source()
	if src.Kind != "simulator" || src.HwmonSensor != "coretemp" {
		t.Errorf("Kind/Sensor = %q/%q", src.Kind, src.HwmonSensor)
	}
	if src.SimStartC != 50 || src.SimAmplitudeC != 10 || src.SimPeriod != 2*time.Minute {
		t.Errorf("simulator section = %+v", src)
	}
	if src.StaticC != 60.5 {
		t.Errorf("StaticC = %v, want 60.5", src.StaticC)
	}
}

func TestSourcePeriodFallback(t *testing.T) {
	s := newTestStore(t)
	viper.Set(KeySimPeriod, "not-a-duration")
	if got := s.Source().SimPeriod; got != 10*time.Minute {
		t.Errorf("SimPeriod = %v, want 10m fallback", got)
	}
}
