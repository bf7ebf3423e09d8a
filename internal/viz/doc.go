// Package viz renders thermodynamic fields read back from their binary files
// for the terminal: per-field summary tables, asciigraph profiles and
// lipgloss styling.
package viz
