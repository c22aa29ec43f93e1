// Package common holds simulation defaults shared by config and the demo.
package common

const (
	// DefaultSubSteps caps how many fixed steps one frame may run.
	DefaultSubSteps = 10
	// DefaultFixedStep is the internal simulation step in seconds.
	DefaultFixedStep = 1.0 / 60.0
	// Gravity is the default downward acceleration along Y.
	Gravity = -9.8
)
