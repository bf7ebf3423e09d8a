package config

import "sort"

func ptr(v float64) *float64 { return &v }

// Presets are ready-made thermodynamic conditions for the constant and
// uniform generator.
var Presets = map[string]ThermoConfig{
	"still": {
		Press: 100000.0, Temp: 273.15, Qvap: 0.0, Qcond: 0.0,
	},
	"saturated": {
		Press: 100000.0, Temp: 273.15, Relh: ptr(95.0), Qcond: 0.0,
		WVel: ptr(0.0), UVel: ptr(0.0), VVel: ptr(0.0),
	},
	"updraught": {
		Press: 101500.0, Temp: 289.0, Qvap: 0.0075, Qcond: 0.0,
		WVel: ptr(0.6),
	},
	"shear": {
		Press: 101500.0, Temp: 289.0, Qvap: 0.0075, Qcond: 0.0,
		WVel: ptr(0.0), UVel: ptr(2.0),
	},
}

func GetPreset(name string) *ThermoConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
