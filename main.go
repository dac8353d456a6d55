package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Small smoke-test client: posts a question to a running instance and
// prints the answer. Useful while iterating on extraction rules.
func main() {
	addr := flag.String("addr", "http://localhost:8080", "server address")
	userContext := flag.String("player", "", "pre-selected player name")
	flag.Parse()

	question := strings.Join(flag.Args(), " ")
	if question == "" {
		log.Fatal("usage: go run . [-addr URL] [-player NAME] <question>")
	}

	body := map[string]interface{}{"question": question}
	if *userContext != "" {
		body["userContext"] = *userContext
	}
	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Error marshaling request: %v", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(*addr+"/api/v1/chat/query", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Error calling chat API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Error reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Unexpected status %d: %s", resp.StatusCode, respBody)
	}

	var parsed struct {
		Answer     string  `json:"answer"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		log.Fatalf("Error parsing response: %v", err)
	}

	fmt.Printf("%s (confidence %.1f)\n", parsed.Answer, parsed.Confidence)
}
