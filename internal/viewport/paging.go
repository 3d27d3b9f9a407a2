package viewport

// PageUp scrolls up by one page (viewport height minus overlap).
func (v *Viewport) PageUp(smooth bool) {
	v.ScrollBy(-v.pageSize(), 0, smooth)
}

// PageDown scrolls down by one page (viewport height minus overlap).
func (v *Viewport) PageDown(smooth bool) {
	v.ScrollBy(v.pageSize(), 0, smooth)
}

// HalfPageUp scrolls up by half a page.
func (v *Viewport) HalfPageUp(smooth bool) {
	v.ScrollBy(-v.halfPage(), 0, smooth)
}

// HalfPageDown scrolls down by half a page.
func (v *Viewport) HalfPageDown(smooth bool) {
	v.ScrollBy(v.halfPage(), 0, smooth)
}

func (v *Viewport) pageSize() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	// Keep 2 lines of overlap
	return max(v.height-2, 1)
}

func (v *Viewport) halfPage() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return max(v.height/2, 1)
}

// ScrollToBottom scrolls so the last content row is visible.
func (v *Viewport) ScrollToBottom(smooth bool) {
	v.mu.RLock()
	bottom := v.maxTop()
	left := v.left
	v.mu.RUnlock()

	v.ScrollTo(bottom, left, smooth)
}

// ScrollPercent returns how far through the content we've scrolled
// (0.0 to 1.0).
func (v *Viewport) ScrollPercent() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	maxTop := v.maxTop()
	if maxTop == 0 {
		return 0.0
	}
	return float64(v.top) / float64(maxTop)
}

// ScrollToPercent scrolls to a percentage of the content.
func (v *Viewport) ScrollToPercent(percent float64, smooth bool) {
	percent = min(max(percent, 0), 1)

	v.mu.RLock()
	target := int(float64(v.maxTop()) * percent)
	left := v.left
	v.mu.RUnlock()

	v.ScrollTo(target, left, smooth)
}
