// Package viz provides terminal-based visualization of ring solutions.
//
// The package renders concentration profiles as asciigraph charts and
// implements a live Bubble Tea view that animates a solved ring over time
// by querying the closed-form solver at successive instants.
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	R     - Reset to t=0
//	+/-   - Speed up / slow down playback
//	Q     - Quit
package viz
