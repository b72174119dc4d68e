package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/staffdesk/staffdesk/internal/client/cli"
	"github.com/staffdesk/staffdesk/internal/client/directory"
	"github.com/staffdesk/staffdesk/internal/client/notify"
	"github.com/staffdesk/staffdesk/internal/client/session"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080/api", "base URL of the staffdesk API")
	local := flag.Bool("local", false, "use the seeded in-memory directory instead of the API")
	tokenFile := flag.String("token-file", "", "session token file (defaults to the user config dir)")
	flag.Parse()

	path := *tokenFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			log.Fatalf("cannot resolve session path: %v", err)
		}
	}
	store := session.NewStore(path)

	var dir directory.Service
	if *local {
		dir = directory.NewLocal(store,
			directory.WithSeed(directory.SeedRoster()),
			directory.WithLatency(200*time.Millisecond),
		)
	} else {
		dir = directory.NewClient(*addr, store)
	}

	app := cli.NewApp(store, dir, notify.NewQueue())
	app.Run(context.Background())
}
