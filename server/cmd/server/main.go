package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/server/core"
	"github.com/automoto/yeetables/shared/protocol"
)

func main() {
	port := flag.Uint("port", cfg.Server.Port, "Server port")
	tickRate := flag.Int("tickrate", cfg.Server.TickRate, "Server tick rate (updates per second)")
	name := flag.String("name", "Yeetables Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	dataDir := flag.String("data", "", "Directory with yeetables.yml, items.yml and config.yml (empty = built-in defaults)")
	arena := flag.String("arena", "", "Arena TMX file (empty = flat stone arena)")
	maxPlayers := flag.Int("maxplayers", cfg.Server.MaxPlayers, "Maximum joined players")
	adminToken := flag.String("admin-token", os.Getenv("YEETABLES_ADMIN_TOKEN"), "Token for admin commands (empty disables them)")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	var fsys fs.FS
	if *dataDir != "" {
		fsys = os.DirFS(*dataDir)
	}
	defs := definitions.NewRegistry(fsys)
	if err := defs.Reload(); err != nil {
		log.Printf("[definitions] Loaded with errors: %v", err)
	}
	log.Printf("[definitions] %d yeetables enabled", len(defs.Enabled()))

	world, err := core.LoadWorld(*arena)
	if err != nil {
		log.Fatalf("Failed to load world: %v", err)
	}

	server := core.NewServer(world, defs, core.Config{
		Name:       *name,
		Version:    *version,
		TickRate:   *tickRate,
		MaxPlayers: *maxPlayers,
		AdminToken: *adminToken,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting Yeetables server %q on port %d (tick rate: %d/s, version: %s)",
		*name, *port, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
