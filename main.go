package main

import (
	"log"

	"draw2photo-server/confs"
	"draw2photo-server/db"
	"draw2photo-server/server"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// open database SQLite
	database, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// run server
	srv := server.NewServer(cfg, database)
	srv.Start()
}
