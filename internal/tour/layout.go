package tour

import "math"

const (
	highlightMargin = 8
	tooltipGap      = 10
	tooltipWidth    = 320
	edgePadding     = 16

	// flipThreshold is the space needed under the anchor for a tooltip
	// placed below it.
	flipThreshold = 200
	aboveOffset   = 20

	mobileBreakpoint = 768
)

// Rect is an element box in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }
func (r Rect) Right() float64  { return r.Left + r.Width }

// Within reports whether r lies fully inside vp.
func (r Rect) Within(vp Viewport) bool {
	return r.Top >= 0 && r.Left >= 0 && r.Bottom() <= vp.Height && r.Right() <= vp.Width
}

type Viewport struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// Side tells on which side of the anchor the tooltip sits.
type Side string

const (
	SideBelow Side = "below"
	SideAbove Side = "above"
)

// Overlay is the computed geometry for one highlighted anchor. For SideBelow
// Top is the tooltip's distance from the viewport top; for SideAbove Bottom
// is its distance from the viewport bottom.
type Overlay struct {
	Highlight Rect    `json:"highlight"`
	Side      Side    `json:"side"`
	Top       float64 `json:"top"`
	Bottom    float64 `json:"bottom"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	Centered  bool    `json:"centered"`
}

// Layout places the highlight box and tooltip for an anchor box.
func Layout(rect Rect, vp Viewport) Overlay {
	o := Overlay{
		Highlight: Rect{
			Top:    rect.Top - highlightMargin,
			Left:   rect.Left - highlightMargin,
			Width:  rect.Width + 2*highlightMargin,
			Height: rect.Height + 2*highlightMargin,
		},
		Width: tooltipWidth,
	}

	if rect.Bottom() > vp.Height-flipThreshold {
		o.Side = SideAbove
		o.Bottom = vp.Height - rect.Top + aboveOffset
	} else {
		o.Side = SideBelow
		o.Top = rect.Bottom() + tooltipGap
	}

	if vp.Width < mobileBreakpoint {
		o.Left = vp.Width/2 - tooltipWidth/2
		o.Centered = true
		return o
	}

	// The lower bound wins on viewports narrower than the tooltip.
	centered := rect.Left + rect.Width/2 - tooltipWidth/2
	o.Left = math.Max(edgePadding, math.Min(vp.Width-tooltipWidth-edgePadding, centered))

	return o
}
