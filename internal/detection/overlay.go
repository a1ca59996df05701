package detection

import (
	id "verifid/pkg/domain"
)

// Rect is an axis-aligned region in frame pixel coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Ellipse is the face guide drawn for the selfie stage.
type Ellipse struct {
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`
	RadiusX int `json:"radius_x"`
	RadiusY int `json:"radius_y"`
}

// Overlay describes the alignment guide for one rendered frame: a dashed
// guide region whose stroke color encodes the detection state, plus a face
// ellipse and corner markers for the selfie stage.
type Overlay struct {
	Guide         Rect     `json:"guide"`
	StrokeColor   string   `json:"stroke_color"`
	PulsePhase    float64  `json:"pulse_phase"`
	FaceGuide     *Ellipse `json:"face_guide,omitempty"`
	CornerMarkers bool     `json:"corner_markers"`
	State         State    `json:"state"`
}

// Guide region as a fixed percentage of the frame: documents use a wide
// card-shaped region, the selfie uses a taller centered one.
const (
	documentGuideWidthPct  = 0.80
	documentGuideHeightPct = 0.55
	selfieGuideWidthPct    = 0.60
	selfieGuideHeightPct   = 0.75
)

// strokeColors maps detection state to the guide stroke.
var strokeColors = map[State]string{
	StatePositioning: "#e53935", // red
	StateAligning:    "#fdd835", // yellow
	StateReady:       "#43a047", // green
}

// BuildOverlay computes the guide geometry for the current frame
// dimensions. Zero dimensions yield a zero-value overlay the renderer can
// skip.
func BuildOverlay(stage id.Stage, state State, pulsePhase float64, frameWidth, frameHeight int) Overlay {
	o := Overlay{
		State:       state,
		StrokeColor: strokeColors[state],
		PulsePhase:  pulsePhase,
	}
	if frameWidth == 0 || frameHeight == 0 {
		return o
	}

	widthPct, heightPct := documentGuideWidthPct, documentGuideHeightPct
	if stage == id.StageSelfie {
		widthPct, heightPct = selfieGuideWidthPct, selfieGuideHeightPct
	}

	gw := int(float64(frameWidth) * widthPct)
	gh := int(float64(frameHeight) * heightPct)
	o.Guide = Rect{
		X:      (frameWidth - gw) / 2,
		Y:      (frameHeight - gh) / 2,
		Width:  gw,
		Height: gh,
	}

	if stage == id.StageSelfie {
		o.CornerMarkers = true
		o.FaceGuide = &Ellipse{
			CenterX: frameWidth / 2,
			CenterY: frameHeight / 2,
			RadiusX: gw * 2 / 5,
			RadiusY: gh * 2 / 5,
		}
	}
	return o
}
