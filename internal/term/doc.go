// Package term runs the scroll engine against a tcell terminal.
//
// Document adapts the root viewport into a scroll.Document whose window is
// the visible text area and whose body is the whole content. NewClock
// delivers throttle and debounce timers as tcell interrupt events, so the
// stream graph and the input handling share the PollEvent goroutine.
//
// App is an interactive pager over that document. Keys and the mouse wheel
// scroll the viewport; g and Home go through Manager.ScrollTop, n and N
// jump between headings with Manager.ScrollToElement, and the status line
// shows the derived streams of the root observer as they fire.
package term
