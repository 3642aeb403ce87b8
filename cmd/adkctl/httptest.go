package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"
)

// cmdletHTTPTest performs a single GET against a URL and reports its
// status, the commandlet the original cmdlets.c always registers
// regardless of build configuration (spec.md §6 "CLI surface
// (commandlets)": "http test").
func cmdletHTTPTest(args []string) error {
	fs := flag.NewFlagSet("http-test", flag.ContinueOnError)
	url := fs.String("url", "", "URL to fetch")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *url == "" {
		return fmt.Errorf("http-test: -url is required")
	}

	client := &http.Client{Timeout: *timeout}
	resp, err := client.Get(*url)
	if err != nil {
		return fmt.Errorf("GET %s: %w", *url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("GET %s: status %d", *url, resp.StatusCode)
	}
	fmt.Printf("GET %s: %d %s\n", *url, resp.StatusCode, resp.Status)
	return nil
}
