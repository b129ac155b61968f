package main

import (
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/skbsalatiga/signage-backend/internal/adminui"
	"github.com/skbsalatiga/signage-backend/pkg/signage"
)

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("SIGNAGE_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}

	var serverURL string
	var logFile string
	flag.StringVar(&serverURL, "server", defaultURL, "base URL of the signage server (overrides SIGNAGE_API_URL)")
	flag.StringVar(&logFile, "log", "", "write debug logs to this file")
	flag.Parse()

	if logFile != "" {
		f, err := tea.LogToFile(logFile, "signage-admin")
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
	}

	client := signage.NewClient(serverURL, 10*time.Second)
	program := tea.NewProgram(adminui.New(client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("admin console failed: %v", err)
	}
}
