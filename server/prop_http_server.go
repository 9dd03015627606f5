package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

type PropHttpServer struct {
	addr      string
	router    *Router
	muxRouter *mux.Router
}

func NewPropHttpServer(addr string, router *Router, muxRouter *mux.Router) *PropHttpServer {
	return &PropHttpServer{
		addr:      addr,
		router:    router,
		muxRouter: muxRouter,
	}
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully and calls
// onShutdown before returning.
func (s *PropHttpServer) Start(onShutdown func()) {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down the server...")
	if onShutdown != nil {
		onShutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
