package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/gg"

	"PaintBoard/internal/config"
	boardnet "PaintBoard/internal/net"
	"PaintBoard/internal/render"
	"PaintBoard/internal/ui"
)

const usage = `usage: paintboard [flags] [desktop|serve|discover]

  desktop   open the drawing window (default)
  serve     serve boards to browsers over websocket
  discover  list board servers on the local network
`

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	verbose := flag.Bool("v", false, "log renderer diagnostics")
	browseFor := flag.Duration("timeout", 3*time.Second, "how long discover listens")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		gg.SetLogger(slog.Default())
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mode := flag.Arg(0)
	switch mode {
	case "", "desktop":
		runDesktop(cfg)
	case "serve":
		runServer(cfg)
	case "discover":
		runDiscover(*browseFor)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runDesktop(cfg config.Config) {
	log.Println("Starting desktop board")
	fonts, err := render.NewFonts()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	ui.RunApp(cfg, cfg.NewBoard(), fonts)
}

func runServer(cfg config.Config) {
	log.Println("Starting board server")
	fonts, err := render.NewFonts()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	server := boardnet.NewServer(cfg, fonts)

	if cfg.Server.MDNS {
		adv, err := boardnet.Advertise(cfg.Server.Port)
		if err != nil {
			log.Printf("mDNS disabled: %v", err)
		} else {
			defer adv.Shutdown()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("Share link: %s", boardnet.WebSocketURL(boardnet.OutgoingIP(), cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func runDiscover(timeout time.Duration) {
	found := 0
	err := boardnet.Browse(timeout, func(url string) {
		found++
		fmt.Println(url)
	})
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
	if found == 0 {
		log.Println("No boards found")
	}
}
