package timeaxis

// Margin is the padding around the drawable axis area
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Viewport is the pixel rectangle the axis is drawn into
type Viewport struct {
	Width  float64
	Height float64
	Margin Margin
}

// ContentWidth is the width left after horizontal margins, never below 1
func (v Viewport) ContentWidth() float64 {
	w := v.Width - v.Margin.Left - v.Margin.Right
	if w < 1 {
		return 1
	}
	return w
}

// Left is the pixel where content starts
func (v Viewport) Left() float64 { return v.Margin.Left }

// Right is the pixel where content ends
func (v Viewport) Right() float64 { return v.Margin.Left + v.ContentWidth() }

// ScaleFor returns the zoom density for a resolution. Only the ordering
// Days > Months > Years matters to callers.
func ScaleFor(r Resolution) float64 {
	switch r {
	case Days:
		return 256
	case Months:
		return 16
	default:
		return 1
	}
}
