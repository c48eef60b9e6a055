// Package main runs a two-player hotseat game in the terminal.
package main

import (
	"crypto/rand"
	"flag"
	"log"
	"os"
	"time"

	"termchess/internal/cli"
	"termchess/internal/service"
	"termchess/internal/storage"
	clitransport "termchess/internal/transport/cli"

	"golang.org/x/term"
)

func main() {
	var (
		saveDir     = flag.String("save-dir", ".", "Directory for saved games")
		storagePath = flag.String("storage-path", "", "Optional SQLite archive of played games")
		theme       = flag.String("theme", "off", "Board color theme (off|brown|green|gray)")
		history     = flag.String("history", "", "Optional readline history file")
	)
	flag.Parse()

	saves, err := storage.NewSaveDir(*saveDir)
	if err != nil {
		log.Fatalf("Failed to open save directory: %v", err)
	}

	var store *storage.Store
	if *storagePath != "" {
		store, err = storage.NewStore(*storagePath, false)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	}

	// Seat tokens are never issued on a hotseat terminal
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}

	svc := service.New(store, saves, secret)
	defer func() {
		if err := svc.Shutdown(time.Second); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	var input cli.LineReader
	if term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := cli.NewReadlineReader(*history)
		if err != nil {
			log.Fatalf("Failed to start line editor: %v", err)
		}
		defer rl.Close()
		input = rl
	} else {
		input = cli.NewScannerReader(os.Stdin, os.Stdout)
	}

	plain := !term.IsTerminal(int(os.Stdout.Fd()))
	view := cli.New(input, os.Stdout, plain)
	if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
		log.Fatalf("%v", err)
	}

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	if err := handler.Run(); err != nil {
		log.Printf("Input error: %v", err)
	}
}
