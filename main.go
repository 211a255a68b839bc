package main

import (
	"BurningShip/burningship"
	"BurningShip/misc"
	"BurningShip/palette"
	"BurningShip/raster"
	"BurningShip/rpc"
	"BurningShip/tui"
	"BurningShip/viewer"
	"BurningShip/window"
	"context"
	"errors"
	"flag"
	"image"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/BrugadaSyndrome/multirpc"
)

func main() {
	logger := bslogger.NewLogger("BurningShip", bslogger.Normal, nil)

	args, err := parseArguments(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	misc.CheckError(err, logger, misc.Fatal)
	if args.verbose {
		logger = bslogger.NewLogger("BurningShip", bslogger.All, nil)
	}

	s, err := loadSettings(args.settingsFile)
	misc.CheckError(err, logger, misc.Fatal)
	misc.CheckError(args.apply(&s), logger, misc.Fatal)
	misc.CheckError(s.Verify(), logger, misc.Fatal)
	logger.Debug(s.String())

	misc.CheckError(run(s, logger), logger, misc.Fatal)
}

func run(s settings, logger bslogger.Logger) error {
	mapper, err := palette.New(s.PaletteSettings)
	if err != nil {
		return err
	}
	if script, ok := mapper.(*palette.Script); ok {
		defer script.Close()
	}

	if s.Mode == "remote" {
		return renderRemote(s, logger)
	}

	target := raster.NewTarget(int(s.RendererSettings.Width), int(s.RendererSettings.Height), s.channelPolicy())
	renderer, err := burningship.NewRenderer(s.RendererSettings, target)
	if err != nil {
		return err
	}

	// Every surface starts with the configured viewport on display
	stats, err := renderer.Render(s.RendererSettings.Viewport, mapper)
	if err != nil {
		return err
	}
	logger.Infof("Rendered %s %s", s.RendererSettings.Viewport, stats.String())

	switch s.Mode {
	case "png":
		img, _ := target.Snapshot()
		return saveOutput(s, img, logger)

	case "web":
		server := viewer.NewServer(s.Address, renderer, mapper)
		if err := server.Run(); err != nil {
			return err
		}
		waitForInterrupt(logger)
		return server.Stop()

	case "tui":
		return tui.Run(renderer, mapper)

	case "window":
		return window.RunWindow(renderer, mapper, "Burning Ship")

	case "rpc":
		address, err := misc.ResolveListenAddress(s.Address)
		if err != nil {
			return err
		}
		server := multirpc.NewTcpServer(rpc.NewRenderService(renderer, mapper), address, "RenderServer")
		if err := server.Run(); err != nil {
			return err
		}
		logger.Infof("Serving renders at %s", address)
		if localAddress, err := misc.GetLocalAddress(); !misc.CheckError(err, logger, misc.Debug) {
			logger.Infof("Other machines on the network can use %s with the port of %s", localAddress, address[strings.LastIndex(address, ":")+1:])
		}
		waitForInterrupt(logger)
		if err := server.Stop(); err != nil {
			return err
		}
		server.Wait()
	}
	return nil
}

// renderRemote asks a render server for the configured viewport and saves the answer
func renderRemote(s settings, logger bslogger.Logger) error {
	client := multirpc.NewTcpClient(s.Address, "RenderClient")
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Disconnect()

	img, stats, err := rpc.RenderRemote(&client, s.RendererSettings.Viewport)
	if err != nil {
		return err
	}
	logger.Infof("Server rendered %s %s", s.RendererSettings.Viewport, stats.String())
	return saveOutput(s, img, logger)
}

func saveOutput(s settings, img *image.RGBA, logger bslogger.Logger) error {
	if err := misc.SaveImage(s.Output, img); err != nil {
		return err
	}
	logger.Infof("Saved %s", s.Output)

	if s.BackupSettings {
		fileName, err := s.backup()
		if misc.CheckError(err, logger, misc.Warning) {
			return nil
		}
		logger.Infof("Saved settings to %s", fileName)
	}
	return nil
}

func waitForInterrupt(logger bslogger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("Press ctrl+c to stop")
	<-ctx.Done()
}
