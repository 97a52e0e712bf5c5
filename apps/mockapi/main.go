// Command mockapi serves the development fixtures over the same REST API the stores consume.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/campus/apps/mockapi/echo"
	"github.com/trezcool/campus/apps/shared"
	"github.com/trezcool/campus/core"
)

func main() {
	conf := core.NewConfig()

	logger := shared.NewLogger(conf, "mockapi")
	defer logger.Close()

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server, err := echoapi.NewFixturesServer(echoapi.Options{
		Address:       conf.MockAPI.Address,
		AppName:       conf.AppName,
		Debug:         conf.Debug,
		SecretKey:     conf.MockAPI.SecretKey,
		JWTExpiration: conf.MockAPI.JWTExpiration,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("setting up server", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening on " + conf.MockAPI.Address)
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		if err != nil {
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.MockAPI.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
