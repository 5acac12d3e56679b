package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

const (
	baseURL   = "http://localhost:8080"
	apiKey    = "portfolio"
	apiSecret = "letmein"
)

type jwtResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

type chatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Manual smoke test against a running server: mint a token, then push a
// couple of messages through the relay.
func main() {
	fmt.Println("Starting chat relay smoke test...")

	token, err := getJWTToken()
	if err != nil {
		log.Fatalf("Failed to get JWT token: %v", err)
	}
	fmt.Printf("JWT token obtained: %s...\n", token[:20])

	history := [][2]string{}
	for _, message := range []string{"hi", "tell me about the hackathon"} {
		reply, err := sendChat(message, history)
		if err != nil {
			log.Fatalf("Chat request failed: %v", err)
		}
		fmt.Printf("> %s\n< %s\n", message, reply)
		history = append(history, [2]string{"user", message}, [2]string{"ai", reply})
	}

	fmt.Println("Smoke test completed successfully!")
}

func getJWTToken() (string, error) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/auth/token", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("X-API-Secret", apiSecret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)
	}

	var out jwtResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func sendChat(message string, history [][2]string) (string, error) {
	turns := make([]map[string]string, 0, len(history))
	for _, turn := range history {
		turns = append(turns, map[string]string{"role": turn[0], "text": turn[1]})
	}

	payload, err := json.Marshal(map[string]interface{}{
		"message": message,
		"history": turns,
	})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(baseURL+"/api/reet", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("relay returned %d: %s", resp.StatusCode, out.Error)
	}
	return out.Response, nil
}
