package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"abhyaasi/api"
	"abhyaasi/cli"
	"abhyaasi/config"
	"abhyaasi/session"
	"abhyaasi/store"
)

func main() {
	config.LoadConfig()

	st, err := store.Open(config.AppConfig.StorePath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer st.Close()

	client := api.New(config.AppConfig.APIBaseURL, config.AppConfig.HTTPTimeout, st)
	sess := session.New(st, client, session.Options{
		Staleness:  config.AppConfig.CacheStaleness,
		RetryCount: config.AppConfig.RetryCount,
		RetryDelay: config.AppConfig.RetryDelay,
	})
	sess.Start(context.Background())

	commandLine := cli.New(config.AppConfig, st, client, sess)
	err = commandLine.Run(os.Args)

	// Let the activity ping finish before the process goes away.
	sess.Wait(2 * time.Second)

	if err != nil {
		if errors.Is(err, api.ErrNotAuthenticated) {
			log.Println("You are not logged in. Run `abhyaasi login` first.")
		}
		os.Exit(1)
	}
}
