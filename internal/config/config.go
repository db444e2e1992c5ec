package config

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"tempwatch/internal/logger"
	"tempwatch/internal/models"
)

// Configuration keys. Dot paths mirror configs/config.yml.
const (
	KeyPort     = "port"
	KeyLogLevel = "log.level"
	KeyDBPath   = "db.path"

	KeyAuthSigningKey = "auth.signing_key"
	KeyAuthTokenTTL   = "auth.token_ttl"

	KeySourceKind        = "source.kind"
	KeySourceHwmonSensor = "source.hwmon.sensor"
	KeySimStartC         = "source.simulator.start_c"
	KeySimAmplitudeC     = "source.simulator.amplitude_c"
	KeySimPeriod         = "source.simulator.period"
	KeyStaticC           = "source.static.temperature_c"

	KeyCheckInterval      = "monitor.check_interval_seconds"
	KeyHistorySize        = "monitor.history_size"
	KeyAlertCooldown      = "monitor.alert_cooldown_seconds"
	KeyAlertsEnabled      = "monitor.alerts_enabled"
	KeyThresholdWarning   = "monitor.thresholds.warning"
	KeyThresholdCritical  = "monitor.thresholds.critical"
	KeyThresholdEmergency = "monitor.thresholds.emergency"
)

// Defaults and enforced minimums for the monitor section.
const (
	DefaultCheckIntervalSeconds = 30
	MinCheckIntervalSeconds     = 5
	DefaultHistorySize          = 60
	MinHistorySize              = 10
	DefaultAlertCooldownSeconds = 300
)

// DefaultThresholds is the per-key fallback for missing or unparsable
// threshold values, and the wholesale fallback when an override set breaks
// the warning < critical < emergency ordering.
func DefaultThresholds() models.ThresholdSet {
	return models.ThresholdSet{Warning: 70, Critical: 80, Emergency: 90}
}

// Load reads configs/config.yml and registers defaults for every key the
// daemon consumes. A missing file is reported to the caller; missing
// individual keys are not (they resolve to defaults).
func Load() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	registerDefaults()
	return viper.ReadInConfig()
}

// Watch re-reads the config file when it changes on disk. Monitor section
// lookups go through live viper state, so edited intervals, history sizes
// and thresholds land on the next poll cycle without a restart.
func (s *Store) Watch() {
	viper.OnConfigChange(func(_ fsnotify.Event) {
		if s.log != nil {
			s.log.Infow("config reloaded")
		}
		s.warnUnorderedThresholds()
	})
	viper.WatchConfig()
}

func registerDefaults() {
	viper.SetDefault(KeyPort, "8080")
	viper.SetDefault(KeyLogLevel, logger.InfoLevel)
	viper.SetDefault(KeyDBPath, "tempwatch.db")
	viper.SetDefault(KeyAuthTokenTTL, "1h")
	viper.SetDefault(KeySourceKind, "hwmon")
	viper.SetDefault(KeySimStartC, 45.0)
	viper.SetDefault(KeySimAmplitudeC, 40.0)
	viper.SetDefault(KeySimPeriod, "10m")
	viper.SetDefault(KeyStaticC, 50.0)
	viper.SetDefault(KeyCheckInterval, DefaultCheckIntervalSeconds)
	viper.SetDefault(KeyHistorySize, DefaultHistorySize)
	viper.SetDefault(KeyAlertCooldown, DefaultAlertCooldownSeconds)
	viper.SetDefault(KeyAlertsEnabled, true)

	def := DefaultThresholds()
	viper.SetDefault(KeyThresholdWarning, def.Warning)
	viper.SetDefault(KeyThresholdCritical, def.Critical)
	viper.SetDefault(KeyThresholdEmergency, def.Emergency)
}

// Store resolves typed sections from live viper state. It is safe to share:
// it holds no mutable state of its own.
type Store struct {
	log *logger.Logger
}

func NewStore(log *logger.Logger) *Store {
	s := &Store{log: log}
	s.warnUnorderedThresholds()
	return s
}

// MonitorConfig is the monitor section with minimums enforced.
type MonitorConfig struct {
	Interval      time.Duration
	HistorySize   int
	Cooldown      time.Duration
	AlertsEnabled bool
	Thresholds    models.ThresholdSet
}

// Monitor resolves the monitor section. Interval and history size are
// clamped to their enforced minimums; a non-positive cooldown falls back to
// the default.
func (s *Store) Monitor() MonitorConfig {
	interval := intOr(KeyCheckInterval, DefaultCheckIntervalSeconds)
	if interval < MinCheckIntervalSeconds {
		interval = MinCheckIntervalSeconds
	}
	size := intOr(KeyHistorySize, DefaultHistorySize)
	if size < MinHistorySize {
		size = MinHistorySize
	}
	cooldown := intOr(KeyAlertCooldown, DefaultAlertCooldownSeconds)
	if cooldown < 0 {
		cooldown = DefaultAlertCooldownSeconds
	}
	return MonitorConfig{
		Interval:      time.Duration(interval) * time.Second,
		HistorySize:   size,
		Cooldown:      time.Duration(cooldown) * time.Second,
		AlertsEnabled: boolOr(KeyAlertsEnabled, true),
		Thresholds:    s.Thresholds(),
	}
}

// Thresholds resolves the threshold set with per-key fallback, then rejects
// override sets that break the level ordering (falling back to defaults as
// a whole). The rejection is logged by Watch/NewStore, not here, to keep
// per-poll lookups quiet.
func (s *Store) Thresholds() models.ThresholdSet {
	ts := rawThresholds()
	if !ts.Ordered() {
		return DefaultThresholds()
	}
	return ts
}

// AuthConfig is the auth section.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

func (s *Store) Auth() AuthConfig {
	ttl, err := time.ParseDuration(viper.GetString(KeyAuthTokenTTL))
	if err != nil || ttl <= 0 {
		ttl = time.Hour
	}
	return AuthConfig{
		SigningKey: viper.GetString(KeyAuthSigningKey),
		TokenTTL:   ttl,
	}
}

// SourceConfig is the temperature source section.
type SourceConfig struct {
	Kind          string
	HwmonSensor   string
	SimStartC     float64
	SimAmplitudeC float64
	SimPeriod     time.Duration
	StaticC       float64
}

func (s *Store) Source() SourceConfig {
	period, err := time.ParseDuration(viper.GetString(KeySimPeriod))
	if err != nil || period <= 0 {
		period = 10 * time.Minute
	}
	return SourceConfig{
		Kind:          viper.GetString(KeySourceKind),
		HwmonSensor:   viper.GetString(KeySourceHwmonSensor),
		SimStartC:     floatOr(KeySimStartC, 45),
		SimAmplitudeC: floatOr(KeySimAmplitudeC, 40),
		SimPeriod:     period,
		StaticC:       floatOr(KeyStaticC, 50),
	}
}

func rawThresholds() models.ThresholdSet {
	def := DefaultThresholds()
	return models.ThresholdSet{
		Warning:   floatOr(KeyThresholdWarning, def.Warning),
		Critical:  floatOr(KeyThresholdCritical, def.Critical),
		Emergency: floatOr(KeyThresholdEmergency, def.Emergency),
	}
}

func (s *Store) warnUnorderedThresholds() {
	ts := rawThresholds()
	if ts.Ordered() || s.log == nil {
		return
	}
	def := DefaultThresholds()
	s.log.Warnw("configured thresholds are not ordered warning<critical<emergency; using defaults",
		"warning", ts.Warning, "critical", ts.Critical, "emergency", ts.Emergency,
		"default_warning", def.Warning, "default_critical", def.Critical, "default_emergency", def.Emergency,
	)
}

// Cast helpers: defaults are registered for every key, so viper.Get always
// yields a value; an unparsable override falls back per-key.

func floatOr(key string, def float64) float64 {
	v, err := cast.ToFloat64E(viper.Get(key))
	if err != nil {
		return def
	}
	return v
}

func intOr(key string, def int) int {
	v, err := cast.ToIntE(viper.Get(key))
	if err != nil {
		return def
	}
	return v
}

func boolOr(key string, def bool) bool {
	v, err := cast.ToBoolE(viper.Get(key))
	if err != nil {
		return def
	}
	return v
}
