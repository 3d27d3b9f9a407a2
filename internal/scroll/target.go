package scroll

// Listenable is anything that reports native scroll occurrences.
type Listenable interface {
	// AddScrollListener registers fn to be called after every scroll and
	// returns the function that removes it.
	AddScrollListener(fn func()) (remove func())
}

// Box reports the scroll offsets and extents of a scrollable box.
type Box interface {
	ScrollTop() int
	ScrollLeft() int
	// ClientHeight and ClientWidth are the visible extent.
	ClientHeight() int
	ClientWidth() int
	// ScrollHeight and ScrollWidth are the full content extent.
	ScrollHeight() int
	ScrollWidth() int
}

// Element is an in-page scrollable region.
type Element interface {
	Box
	Listenable
}

// Window is the host viewport that a Document scrolls inside.
type Window interface {
	Listenable
	ScrollX() int
	ScrollY() int
	InnerWidth() int
	InnerHeight() int
}

// Document is the whole scrollable page as seen through its window.
type Document interface {
	Window() Window
	// DocumentElement is the root box whose offsets track the page scroll
	// on standard hosts.
	DocumentElement() Box
	// Body is the content box whose client extent is the page length.
	Body() Box
	// Host identifies the environment quirks that apply to offset reads.
	Host() Host
}

// Target is a Document or an Element. Any other type is rejected when an
// Observer is constructed.
type Target any

// Host names an environment whose document offsets must be read in a
// particular way.
type Host uint8

const (
	// HostStandard reads document offsets from the document element.
	HostStandard Host = iota
	// HostWindowOffsets reads document offsets from the window, for
	// environments whose document element never reports a scroll.
	HostWindowOffsets
)

// String returns the configuration name of the host.
func (h Host) String() string {
	switch h {
	case HostStandard:
		return "standard"
	case HostWindowOffsets:
		return "window"
	default:
		return "unknown"
	}
}

// ParseHost maps a configuration name to a Host.
func ParseHost(s string) (Host, bool) {
	switch s {
	case "", "standard":
		return HostStandard, true
	case "window":
		return HostWindowOffsets, true
	default:
		return 0, false
	}
}
