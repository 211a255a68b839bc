// Package viewer shows the renderer in a browser: a page with the range form and a canvas, and a websocket the
// page sends apply requests over.
package viewer

import (
	"BurningShip/burningship"
	"BurningShip/misc"
	"context"
	_ "embed"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

//go:embed static/index.html
var indexPage []byte

type Server struct {
	address  string
	listener net.Listener
	mapper   burningship.ColorMapper
	mux      *http.ServeMux
	renderer *burningship.Renderer
	server   *http.Server

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewServer(address string, renderer *burningship.Renderer, mapper burningship.ColorMapper) *Server {
	s := &Server{
		address:  address,
		mapper:   mapper,
		mux:      http.NewServeMux(),
		renderer: renderer,
		Logger:   bslogger.NewLogger("Viewer", bslogger.Normal, nil),
		Name:     "Viewer",
		WG:       &sync.WaitGroup{},
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/raster.png", s.handleRaster)
	s.mux.HandleFunc("/ws", s.handleWebsocket)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Address is the address the server listens on, with the real port once Run has been called
func (s *Server) Address() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

func (s *Server) Run() error {
	var err error
	s.listener, err = net.Listen("tcp", s.address)
	if err != nil {
		s.Logger.Errorf("Listening at address %s", s.address)
		return err
	}

	s.server = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.WG.Add(1)
	go func() {
		defer s.WG.Done()
		if err := s.server.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Errorf("Serving at address %s - %s", s.Address(), err)
		}
	}()

	s.Logger.Infof("Running viewer at http://%s", s.Address())
	return nil
}

func (s *Server) Stop() error {
	if s.server == nil {
		return errors.New("viewer is not running")
	}
	s.Logger.Infof("Shutting down viewer at address %s", s.Address())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.Logger.Errorf("Shutting down viewer at address %s", s.Address())
		return err
	}
	s.WG.Wait()
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleRaster(w http.ResponseWriter, r *http.Request) {
	img, _ := s.renderer.Target().Snapshot()
	contents, err := misc.EncodeImage(img, "png")
	if misc.CheckError(err, s.Logger, misc.Error) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(contents)
}

// handleWebsocket sends the raster on display, then answers every apply request with the new raster or the reason
// it was not rendered
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.Logger.Warningf("Accepting websocket - %s", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	if err := wsjson.Write(ctx, conn, frameReply(s.renderer.Frame())); err != nil {
		s.Logger.Warningf("Sending raster - %s", err)
		return
	}

	for {
		var request ApplyRequest
		err := wsjson.Read(ctx, conn, &request)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				s.Logger.Debugf("Reading apply request - %s", err)
			}
			return
		}

		if err := wsjson.Write(ctx, conn, s.apply(request)); err != nil {
			s.Logger.Warningf("Sending reply - %s", err)
			return
		}
	}
}

func (s *Server) apply(request ApplyRequest) Reply {
	f := request.Form()
	viewport, err := f.Viewport()
	if err != nil {
		s.Logger.Infof("Rejected apply request - %s", err)
		return errorReply(err)
	}
	frame, err := s.renderer.RenderFrame(viewport, s.mapper)
	if err != nil {
		s.Logger.Infof("Rejected apply request - %s", err)
		return errorReply(err)
	}
	s.Logger.Debugf("Applied %s", frame.Stats.String())
	return frameReply(frame)
}
