package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// chipPriority orders hwmon chips when no explicit sensor is configured.
// CPU packages first, then the generic ACPI thermal zone.
var chipPriority = map[string]int{
	"coretemp":    0,
	"k10temp":     1,
	"zenpower":    2,
	"cpu_thermal": 3,
	"acpitz":      4,
}

// Hwmon reads temperatures from the Linux hwmon sysfs tree. Values in
// temp*_input files are millidegrees Celsius; the hottest input of the
// chosen chip wins, since alerts care about the worst core.
type Hwmon struct {
	sensor string // optional chip name filter, e.g. "coretemp"
	base   string
}

// NewHwmon returns a reader over /sys/class/hwmon. An empty sensor name
// lets the reader pick the best-known chip on its own.
func NewHwmon(sensor string) *Hwmon {
	return &Hwmon{sensor: sensor, base: "/sys/class/hwmon"}
}

func (h *Hwmon) Read(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	dirs, err := filepath.Glob(filepath.Join(h.base, "hwmon*"))
	if err != nil {
		return Sample{}, fmt.Errorf("scan hwmon tree: %w", err)
	}
	if len(dirs) == 0 {
		return Sample{}, ErrUnavailable
	}

	type chip struct {
		name string
		dir  string
	}
	var chips []chip
	for _, dir := range dirs {
		raw, err := os.ReadFile(filepath.Join(dir, "name"))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(raw))
		if h.sensor != "" && name != h.sensor {
			continue
		}
		chips = append(chips, chip{name: name, dir: dir})
	}
	if len(chips) == 0 {
		return Sample{}, ErrUnavailable
	}

	best := chips[0]
	for _, c := range chips[1:] {
		if rank(c.name) < rank(best.name) {
			best = c
		}
	}

	inputs, err := filepath.Glob(filepath.Join(best.dir, "temp*_input"))
	if err != nil {
		return Sample{}, fmt.Errorf("scan %s inputs: %w", best.name, err)
	}
	if len(inputs) == 0 {
		return Sample{}, ErrUnavailable
	}

	hottest, found := 0.0, false
	for _, input := range inputs {
		raw, err := os.ReadFile(input)
		if err != nil {
			// Inputs can vanish mid-scan on hotplug; treat a chip with
			// zero readable inputs as a transient failure below.
			continue
		}
		milli, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			continue
		}
		if c := float64(milli) / 1000.0; !found || c > hottest {
			hottest, found = c, true
		}
	}
	if !found {
		return Sample{}, fmt.Errorf("no readable inputs under %s", best.dir)
	}

	return Sample{
		Temperature: hottest,
		Message:     fmt.Sprintf("%s (%s)", best.name, filepath.Base(best.dir)),
	}, nil
}

func rank(name string) int {
	if r, ok := chipPriority[name]; ok {
		return r
	}
	return len(chipPriority)
}
