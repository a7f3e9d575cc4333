// Package xr implements laser-pointer interaction for VR and desktop scenes:
// resolving what a pointing ray touches, hover and select events, teleporting
// to walkable surfaces, snap turning, and choosing which of two controllers
// drives the pointer.
//
// Everything runs on the caller's goroutine from a per-frame Tick. The only
// deferred work goes through the Scheduler passed to NewCoordinator.
package xr
