package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tempwatch/internal/config"
)

// writeHwmonChip lays out one hwmon directory in the fake sysfs tree.
func writeHwmonChip(t *testing.T, base, dir, name string, milli ...string) {
	t.Helper()
	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", full, err)
	}
	if name != "" {
		if err := os.WriteFile(filepath.Join(full, "name"), []byte(name+"\n"), 0o644); err != nil {
			t.Fatalf("write name: %v", err)
		}
	}
	for i, m := range milli {
		input := filepath.Join(full, "temp"+string(rune('1'+i))+"_input")
		if err := os.WriteFile(input, []byte(m+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", input, err)
		}
	}
}

func TestHwmonRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sensor    string
		setup     func(t *testing.T, base string)
		wantTemp  float64
		wantMsg   string
		wantUnav  bool
		wantError bool
	}{
		{
			name: "picks hottest input of preferred chip",
			setup: func(t *testing.T, base string) {
				writeHwmonChip(t, base, "hwmon0", "acpitz", "27800")
				writeHwmonChip(t, base, "hwmon1", "coretemp", "41000", "63500", "52000")
			},
			wantTemp: 63.5,
			wantMsg:  "coretemp (hwmon1)",
		},
		{
			name:   "explicit sensor filter wins over priority",
			sensor: "acpitz",
			setup: func(t *testing.T, base string) {
				writeHwmonChip(t, base, "hwmon0", "acpitz", "27800")
				writeHwmonChip(t, base, "hwmon1", "coretemp", "63500")
			},
			wantTemp: 27.8,
			wantMsg:  "acpitz (hwmon0)",
		},
		{
			name: "unknown chip still used when alone",
			setup: func(t *testing.T, base string) {
				writeHwmonChip(t, base, "hwmon4", "drivetemp", "38000")
			},
			wantTemp: 38,
			wantMsg:  "drivetemp (hwmon4)",
		},
		{
			name:     "empty tree is unavailable",
			setup:    func(t *testing.T, base string) {},
			wantUnav: true,
		},
		{
			name:   "filter matching nothing is unavailable",
			sensor: "k10temp",
			setup: func(t *testing.T, base string) {
				writeHwmonChip(t, base, "hwmon0", "coretemp", "50000")
			},
			wantUnav: true,
		},
		{
			name: "chip without inputs is unavailable",
			setup: func(t *testing.T, base string) {
				writeHwmonChip(t, base, "hwmon0", "coretemp")
			},
			wantUnav: true,
		},
		{
			name: "garbage input is a transient error",
			setup: func(t *testing.T, base string) {
				writeHwmonChip(t, base, "hwmon0", "coretemp", "not-a-number")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := t.TempDir()
			tt.setup(t, base)

			h := NewHwmon(tt.sensor)
			h.base = base

			got, err := h.Read(context.Background())
			switch {
			case tt.wantUnav:
				if !errors.Is(err, ErrUnavailable) {
					t.Fatalf("err = %v, want ErrUnavailable", err)
				}
				return
			case tt.wantError:
				if err == nil || errors.Is(err, ErrUnavailable) {
					t.Fatalf("err = %v, want transient error", err)
				}
				return
			case err != nil:
				t.Fatalf("Read: %v", err)
			}
			if got.Temperature != tt.wantTemp {
				t.Errorf("Temperature = %v, want %v", got.Temperature, tt.wantTemp)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestHwmonReadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHwmon("")
	h.base = t.TempDir()
	if _, err := h.Read(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSimulatorWave(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sim := NewSimulator(40, 20, 40*time.Second) // 1 °C/s, peak 60
	sim.nowFn = func() time.Time { return now }

	read := func() Sample {
		t.Helper()
		s, err := sim.Read(context.Background())
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		return s
	}

	if got := read(); got.Temperature != 40 {
		t.Fatalf("first read = %v, want floor 40", got.Temperature)
	}

	now = now.Add(5 * time.Second)
	if got := read(); got.Temperature != 45 {
		t.Fatalf("after 5s = %v, want 45", got.Temperature)
	}

	// Overshoot clamps at the peak and flips direction.
	now = now.Add(30 * time.Second)
	got := read()
	if got.Temperature != 60 {
		t.Fatalf("at peak = %v, want 60", got.Temperature)
	}
	if got.Message != "simulator (COOL)" {
		t.Fatalf("Message = %q, want cooling mode", got.Message)
	}

	now = now.Add(10 * time.Second)
	if got := read(); got.Temperature != 50 {
		t.Fatalf("cooling = %v, want 50", got.Temperature)
	}

	// All the way past the floor clamps and flips back to heating.
	now = now.Add(time.Hour)
	got = read()
	if got.Temperature != 40 {
		t.Fatalf("at floor = %v, want 40", got.Temperature)
	}
	if got.Message != "simulator (HEAT)" {
		t.Fatalf("Message = %q, want heating mode", got.Message)
	}
}

func TestStaticRead(t *testing.T) {
	t.Parallel()

	s := NewStatic(55.5)
	got, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Temperature != 55.5 || got.Message != "static" {
		t.Fatalf("unexpected sample: %+v", got)
	}
}

func TestNewSourceKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.SourceConfig
		want    string
		wantErr bool
	}{
		{name: "hwmon", cfg: config.SourceConfig{Kind: KindHwmon}, want: "*source.Hwmon"},
		{name: "simulator", cfg: config.SourceConfig{Kind: KindSimulator, SimStartC: 45, SimAmplitudeC: 40, SimPeriod: time.Minute}, want: "*source.Simulator"},
		{name: "static", cfg: config.SourceConfig{Kind: KindStatic, StaticC: 55}, want: "*source.Static"},
		{name: "unknown", cfg: config.SourceConfig{Kind: "thermocouple"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown kind")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			switch tt.want {
			case "*source.Hwmon":
				if _, ok := r.(*Hwmon); !ok {
					t.Fatalf("got %T, want %s", r, tt.want)
				}
			case "*source.Simulator":
				if _, ok := r.(*Simulator); !ok {
					t.Fatalf("got %T, want %s", r, tt.want)
				}
			case "*source.Static":
				if _, ok := r.(*Static); !ok {
					t.Fatalf("got %T, want %s", r, tt.want)
				}
			}
		})
	}
}
