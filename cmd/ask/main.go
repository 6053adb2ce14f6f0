package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"weather-skill/models"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "Base URL of the weather skill server")
	location := flag.String("location", "", "Place to ask about (default location of the server if empty)")
	modeName := flag.String("mode", "full", "Kind of answer: full, condition or temperature")
	flag.Parse()

	mode, ok := models.ParseMode(*modeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *modeName)
		os.Exit(2)
	}

	endpoint := *baseURL + "/api/forecast"
	if mode != models.ModeFull {
		endpoint += "/" + mode.String()
	}
	if *location != "" {
		endpoint += "?" + url.Values{"location": {*location}}.Encode()
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(endpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error asking the weather skill: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading response: %v\n", err)
		os.Exit(1)
	}

	var answer struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(body, &answer); err != nil {
		fmt.Fprintf(os.Stderr, "Unexpected response (status %d): %s\n", resp.StatusCode, body)
		os.Exit(1)
	}
	if answer.Error != "" {
		fmt.Fprintf(os.Stderr, "Server error: %s\n", answer.Error)
		os.Exit(1)
	}

	fmt.Println(answer.Response)
}
