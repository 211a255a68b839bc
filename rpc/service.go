package rpc

import (
	"BurningShip/burningship"
	"fmt"
	"image"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/BrugadaSyndrome/multirpc"
)

type Nothing struct{}

type RenderRequest struct {
	Viewport burningship.Viewport
}

type RenderReply struct {
	Height int
	Pix    []byte
	Stats  burningship.Stats
	Width  int
}

// RenderService exposes a renderer to a multirpc server. Remote requests queue behind each other and behind local renders
// of the same renderer.
type RenderService struct {
	logger   bslogger.Logger
	mapper   burningship.ColorMapper
	renderer *burningship.Renderer
}

func NewRenderService(renderer *burningship.Renderer, mapper burningship.ColorMapper) *RenderService {
	return &RenderService{
		logger:   bslogger.NewLogger("RenderService", bslogger.Normal, nil),
		mapper:   mapper,
		renderer: renderer,
	}
}

// Render draws the requested viewport and replies with the presented raster
func (rs *RenderService) Render(request RenderRequest, reply *RenderReply) error {
	frame, err := rs.renderer.RenderFrame(request.Viewport, rs.mapper)
	if err != nil {
		rs.logger.Warningf("Rejected render of %s - %s", request.Viewport, err)
		return err
	}

	reply.Width = frame.Image.Bounds().Dx()
	reply.Height = frame.Image.Bounds().Dy()
	reply.Pix = frame.Image.Pix
	reply.Stats = frame.Stats
	rs.logger.Debugf("Rendered %s for a remote caller %s", request.Viewport, frame.Stats.String())
	return nil
}

func (rs *RenderService) RollCall(nothing Nothing, present *bool) error {
	*present = true
	return nil
}

// RenderRemote asks the server behind client to render viewport
func RenderRemote(client *multirpc.TcpClient, viewport burningship.Viewport) (*image.RGBA, burningship.Stats, error) {
	var reply RenderReply
	err := client.Call("RenderService.Render", RenderRequest{Viewport: viewport}, &reply)
	if err != nil {
		return nil, burningship.Stats{}, err
	}
	if reply.Width <= 0 || reply.Height <= 0 || len(reply.Pix) != 4*reply.Width*reply.Height {
		return nil, reply.Stats, fmt.Errorf("malformed raster %dx%d with %d bytes", reply.Width, reply.Height, len(reply.Pix))
	}

	img := image.NewRGBA(image.Rect(0, 0, reply.Width, reply.Height))
	copy(img.Pix, reply.Pix)
	return img, reply.Stats, nil
}
