package scales

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/thermobin/internal/config"
)

func testConstants() config.Floats {
	return config.Floats{
		"G":         9.80665,
		"RGAS_UNIV": 8.314462618,
		"MR_WATER":  0.01801528,
		"MR_DRY":    0.028966216,
		"CP_DRY":    1004.64,
		"RHO_DRY":   1.177,
		"W0":        1.0,
		"TIME0":     1000.0,
		"P0":        100000.0,
		"TEMP0":     273.15,
	}
}

func testConfig() config.Floats {
	return config.Floats{
		"COUPLTSTEP": 30,
		"T_END":      100,
		"SDnspace":   1,
	}
}

func TestNTime(t *testing.T) {
	tests := []struct {
		step, end float64
		expected  int
	}{
		{30, 100, 5},
		{1, 0, 1},
		{2, 4, 3},
		{0.5, 1.2, 4},
	}

	for _, tt := range tests {
		got, err := NTime(tt.step, tt.end)
		if err != nil {
			t.Fatalf("NTime(%v, %v): %v", tt.step, tt.end, err)
		}
		if got != tt.expected {
			t.Errorf("NTime(%v, %v) = %d, want %d", tt.step, tt.end, got, tt.expected)
		}
	}
}

func TestNTime_Invalid(t *testing.T) {
	for _, step := range []float64{0, -1} {
		if _, err := NTime(step, 100); !errors.Is(err, ErrInvalidTimestep) {
			t.Errorf("step %v: expected ErrInvalidTimestep, got %v", step, err)
		}
	}
	if _, err := NTime(1, -5); !errors.Is(err, ErrInvalidTimestep) {
		t.Errorf("negative end: expected ErrInvalidTimestep, got %v", err)
	}

	nonFinite := []struct {
		step, end float64
	}{
		{math.NaN(), 100},
		{30, math.NaN()},
		{math.Inf(1), 100},
		{30, math.Inf(1)},
		{1e-300, 1e300},
	}
	for _, tt := range nonFinite {
		if n, err := NTime(tt.step, tt.end); !errors.Is(err, ErrInvalidTimestep) {
			t.Errorf("NTime(%v, %v) = %d, %v; want ErrInvalidTimestep", tt.step, tt.end, n, err)
		}
	}
}

func TestDerive_NonFiniteConfig(t *testing.T) {
	cfg, _, err := config.ParseConfigFloats(strings.NewReader("COUPLTSTEP = nan\nT_END = 100\nSDnspace = 1\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := Derive(testConstants(), cfg); !errors.Is(err, ErrInvalidTimestep) {
		t.Errorf("expected ErrInvalidTimestep, got %v", err)
	}
}

func TestDerive(t *testing.T) {
	in, err := Derive(testConstants(), testConfig())
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	if in.NTime != 5 {
		t.Errorf("expected ntime 5, got %d", in.NTime)
	}
	if in.Coord0 != 1000.0 {
		t.Errorf("expected COORD0 1000, got %v", in.Coord0)
	}
	if math.Abs(in.RgasDry-287.04) > 0.01 {
		t.Errorf("unexpected RGAS_DRY %v", in.RgasDry)
	}
	if math.Abs(in.MrRatio-0.62195) > 1e-4 {
		t.Errorf("unexpected Mr_ratio %v", in.MrRatio)
	}
	wantRho0 := 100000.0 / (1004.64 * 273.15)
	if math.Abs(in.Rho0-wantRho0) > 1e-12 {
		t.Errorf("RHO0 = %v, want %v", in.Rho0, wantRho0)
	}
	if in.SDnspace != 1 {
		t.Errorf("expected SDnspace 1, got %d", in.SDnspace)
	}

	s := in.Scales()
	if s.Pressure != 100000.0 || s.Temperature != 273.15 || s.Velocity != 1.0 {
		t.Errorf("unexpected scales %+v", s)
	}
	if s.Vapour != 1.0 || s.Condensate != 1.0 {
		t.Errorf("mixing ratio scales should be 1, got %+v", s)
	}
}

func TestDerive_MissingKey(t *testing.T) {
	tests := []struct {
		name   string
		drop   string
		config bool
		source string
	}{
		{"pressure scale", "P0", false, "constants"},
		{"gas constant", "RGAS_UNIV", false, "constants"},
		{"coupling step", "COUPLTSTEP", true, "config"},
		{"spatial dims", "SDnspace", true, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consts, cfg := testConstants(), testConfig()
			if tt.config {
				delete(cfg, tt.drop)
			} else {
				delete(consts, tt.drop)
			}

			_, err := Derive(consts, cfg)
			var mk *MissingKeyError
			if !errors.As(err, &mk) {
				t.Fatalf("expected MissingKeyError, got %v", err)
			}
			if mk.Key != tt.drop || mk.Source != tt.source {
				t.Errorf("got %s/%s, want %s/%s", mk.Source, mk.Key, tt.source, tt.drop)
			}
		})
	}
}
