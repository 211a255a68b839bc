package viewer

import (
	"BurningShip/burningship"
	"BurningShip/form"
)

const (
	FrameMessage = "frame"
	ErrorMessage = "error"
)

// ApplyRequest carries the text of the four form inputs exactly as typed
type ApplyRequest struct {
	XRangeStart string `json:"xRangeStart"`
	XRangeEnd   string `json:"xRangeEnd"`
	YRangeStart string `json:"yRangeStart"`
	YRangeEnd   string `json:"yRangeEnd"`
}

func (ar ApplyRequest) Form() form.Form {
	return form.Form{Values: [4]string{ar.XRangeStart, ar.XRangeEnd, ar.YRangeStart, ar.YRangeEnd}}
}

// Reply is sent after every apply and once when a page connects.
// Pix holds the RGBA bytes of the raster on display, row by row, as a canvas ImageData expects them.
type Reply struct {
	Type       string `json:"type"`
	Error      string `json:"error,omitempty"`
	Generation uint64 `json:"generation"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Pix        []byte `json:"pix,omitempty"`
	Viewport   string `json:"viewport,omitempty"`
	Elapsed    string `json:"elapsed,omitempty"`
}

func frameReply(frame burningship.Frame) Reply {
	return Reply{
		Type:       FrameMessage,
		Generation: frame.Generation,
		Width:      frame.Image.Bounds().Dx(),
		Height:     frame.Image.Bounds().Dy(),
		Pix:        frame.Image.Pix,
		Viewport:   frame.Viewport.String(),
		Elapsed:    frame.Stats.Elapsed.String(),
	}
}

func errorReply(err error) Reply {
	return Reply{
		Type:  ErrorMessage,
		Error: err.Error(),
	}
}
