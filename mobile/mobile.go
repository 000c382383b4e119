package mobile

import (
	"log"

	"chess3d/internal/server/game"
	httpserver "chess3d/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// depth: default AI search depth, <=0 uses the handler default
func StartServer(webDir string, port string, depth int) {
	h := httpserver.NewHandler(game.NewManager(), depth)
	srv := httpserver.NewServer("127.0.0.1:"+port, httpserver.NewMux(h, webDir))

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
