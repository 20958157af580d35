package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/san-smith/mapgen/internal/export"
	"github.com/san-smith/mapgen/internal/previewws"
	"github.com/san-smith/mapgen/internal/worldgen/pipeline"
)

// newServeCmd starts the dev preview server: an HTTP endpoint that triggers
// a generation run and a WebSocket stream of its stage progress, for the
// browser demo shell. It reuses the teacher's cmd/server/main.go graceful
// shutdown idiom (signal.Notify + server.Shutdown with a timeout).
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dev preview server (HTTP + WebSocket stage progress)",
		RunE: func(cmd *cobra.Command, args []string) error {
			hub := previewws.NewHub()
			done := make(chan struct{})
			go hub.Run(done)
			defer close(done)

			wsHandler := previewws.NewHandler(hub)

			mux := http.NewServeMux()
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			mux.HandleFunc("/ws/", func(w http.ResponseWriter, r *http.Request) {
				runID, err := uuid.Parse(r.URL.Path[len("/ws/"):])
				if err != nil {
					http.Error(w, "invalid run id", http.StatusBadRequest)
					return
				}
				wsHandler.ServeWS(w, r, runID)
			})
			mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
				handleGenerateRequest(w, r, hub)
			})

			server := &http.Server{
				Addr:         addr,
				Handler:      mux,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				fmt.Printf("serve: listening on %s\n", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					fmt.Fprintf(os.Stderr, "serve: %v\n", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			fmt.Println("serve: shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	return cmd
}

func handleGenerateRequest(w http.ResponseWriter, r *http.Request, hub *previewws.Hub) {
	cfg, err := loadConfigOrDefault(configPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	runID := uuid.New()
	artifacts, err := pipeline.Generate(r.Context(), cfg.ToParams())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stages := []string{"heightmap", "erosion", "water", "temperature", "humidity",
		"biomes", "rivers", "provinces", "merge+graph", "regions", "strategic"}
	for i, s := range stages {
		hub.BroadcastStage(runID, s, float64(i+1)/float64(len(stages)))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":   runID,
		"snapshot": export.BuildSnapshot(artifacts),
	})
}
