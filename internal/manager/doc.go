// Package manager keeps one scroll.Observer per scroll target and issues
// settle-aware scroll commands against the root surface.
//
// Observers are memoized by target identity. The registry owns them until
// Forget is called, so callers that dispose of a surface should forget it.
//
// ScrollToElement and ScrollTop return a channel that yields the root
// position from the next ScrollEnd after the command. There is no timeout:
// a command that does not move the root leaves the channel pending.
package manager
