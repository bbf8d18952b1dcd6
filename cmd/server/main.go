package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/mobile-musician-api/internal/app"
	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/jrsteele09/mobile-musician-api/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return errors.Wrap(err, "config.New")
	}
	app.ConfigureLogging(c)
	displayAppname(c.GetAppName())

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, c)
	if err != nil {
		return err
	}
	defer stores.Close()

	objects, err := app.OpenObjectStore(ctx, c)
	if err != nil {
		return err
	}

	services, err := app.NewServices(c, stores, objects)
	if err != nil {
		return err
	}

	serverServices := server.Services{
		Auth:     services.Auth,
		Profiles: services.Profiles,
		Catalog:  stores.Catalog,
	}
	if stores.DB != nil {
		serverServices.Health = stores
	}
	if c.GetS3Bucket() == "" {
		serverServices.StaticDir = c.GetStaticDir()
	}

	handler, err := server.New(c, serverServices)
	if err != nil {
		return errors.Wrap(err, "server.New")
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server.ListenAndServe")
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
