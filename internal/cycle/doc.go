// Package cycle implements a timed activation cycler.
//
// A Cycler walks an ordered list of element handles, tagging each one
// "active" in turn on a fixed interval and reporting progress through the
// current interval. Advancement can be paused by a visibility source, by a
// viewport breakpoint, or manually, and any element can be activated
// directly (for example on click).
//
// Activation is cumulative: activating index k leaves every index <= k
// tagged and untags everything after it.
//
// The package splits into a pure Machine, which owns the state and returns
// effects, and the Cycler shell, which applies those effects to elements,
// observers and a frame Scheduler. A Cycler is not safe for concurrent use;
// hosts drive it from a single goroutine (a Bubble Tea update loop or the
// runner package's owner goroutine).
package cycle
