// Package adjust implements press-and-hold numeric adjustment.
//
// A press applies one step at once. Holding past the hold delay switches to a
// repeating tick that applies the accelerated step; with grid snapping on, the
// first repeating tick instead moves to the next grid line in the direction
// of travel. Every result is clamped to [Min, Max]. Release stops both timers.
//
// The stepper helpers (SnapUp, SnapDown, NextLevel, PrevLevel, FormatScaled)
// serve discrete editors that step over hundredths or level tables.
package adjust
