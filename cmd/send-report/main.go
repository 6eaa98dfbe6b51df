// CLI tool for unattended/scheduled dispatch. Posts to the running engine's
// notify endpoints: the daily reminder, or the end-of-day report with a
// rendered artifact read from disk.
// Usage:
//
//	go run ./cmd/send-report -reminder
//	go run ./cmd/send-report -artifact hud.png
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	reminder := flag.Bool("reminder", false, "send the daily logging reminder instead of the report")
	artifact := flag.String("artifact", "", "path to the rendered artifact to dispatch")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:3000"
	}
	client := &http.Client{Timeout: 30 * time.Second}

	var (
		resp *http.Response
		err  error
	)
	switch {
	case *reminder:
		resp, err = client.Post(apiURL+"/api/notify/reminder", "application/json", nil)
	case *artifact != "":
		var data []byte
		data, err = os.ReadFile(*artifact)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading artifact: %v\n", err)
			os.Exit(1)
		}
		resp, err = client.Post(apiURL+"/api/notify/report", "image/png", bytes.NewReader(data))
	default:
		fmt.Fprintln(os.Stderr, "Pass -reminder or -artifact <path>")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Dispatch request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Dispatch failed (%d): %s\n", resp.StatusCode, body)
		os.Exit(1)
	}
	fmt.Println("Dispatched.")
}
