package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"starboard/internal/auth"
	"starboard/internal/room"
	"starboard/internal/transport"
)

func main() {
	addr := flag.String("addr", ":8080", "server listen address")
	moveDeadline := flag.Duration("move-deadline", room.DefaultMoveDeadline, "per-turn move clock (0 disables it)")
	roomTTL := flag.Duration("room-ttl", room.DefaultRoomTTL, "how long an empty room survives before being reaped")
	playerTTL := flag.Duration("player-ttl", room.DefaultPlayerTTL, "how long a player may miss a liveness probe before eviction")
	shutdownGrace := flag.Duration("shutdown-grace", 5*time.Second, "grace period for in-flight requests on shutdown")
	flag.Parse()

	registry := room.NewRegistry(*moveDeadline, *roomTTL, *playerTTL)
	registry.StartReaper()

	directory := auth.NewDirectory()
	srv := transport.NewServer(registry, directory)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-Token"},
	})

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: corsHandler.Handler(srv.Router()),
	}

	go func() {
		log.Printf("starboard server listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	log.Println("========================================")
	log.Println("  starboard game server")
	log.Println("========================================")
	log.Printf("listen address: %s", *addr)
	log.Printf("move deadline: %s", *moveDeadline)
	log.Printf("room ttl: %s", *roomTTL)
	log.Printf("player ttl: %s", *playerTTL)
	log.Println("========================================")
	log.Println("press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	registry.Shutdown()
	log.Println("server stopped")
}
