package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/madarasa/gradebook/apps/api/echo"
	"github.com/madarasa/gradebook/core"
	"github.com/madarasa/gradebook/core/roster"
	logsvc "github.com/madarasa/gradebook/services/logger"
	inmemdb "github.com/madarasa/gradebook/storage/database/inmem"
	"github.com/madarasa/gradebook/storage/snapshot"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
		logger.Enable(true)
	}

	db, err := inmemdb.Open()
	if err != nil {
		log.Fatalf("opening roster store: %v", err)
	}
	rosterSvc := roster.NewService(
		inmemdb.NewRosterRepository(db),
		snapshot.NewFileStore(),
		roster.ParseGPAPolicy(conf.GPAPolicy),
	)

	// warm start: load the default snapshot if one exists
	if _, err = os.Stat(conf.DataFile); err == nil {
		if err = rosterSvc.Load(conf.DataFile); err != nil {
			logger.Warn(fmt.Sprintf("could not load %s: %v", conf.DataFile, err), err)
		}
	}

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:      conf,
			Logger:    logger,
			RosterSvc: rosterSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
