package main

import (
	"log"
	"os"

	"github.com/madarasa/gradebook/core"
	"github.com/madarasa/gradebook/core/roster"
	inmemdb "github.com/madarasa/gradebook/storage/database/inmem"
	"github.com/madarasa/gradebook/storage/snapshot"
)

func main() {
	conf := core.NewConfig()

	db, err := inmemdb.Open()
	if err != nil {
		log.Fatalf("opening roster store: %v", err)
	}
	svc := roster.NewService(
		inmemdb.NewRosterRepository(db),
		snapshot.NewFileStore(),
		roster.ParseGPAPolicy(conf.GPAPolicy),
	)

	cli := newCommandLine(svc, conf, os.Stdin, os.Stdout)
	cli.run()
}
