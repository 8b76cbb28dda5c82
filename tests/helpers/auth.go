package helpers

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"testing"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// AcquireAccount registers an account through the API and returns an access
// token for it. Registration conflicts are tolerated so tests can reuse an
// email across runs against the same database.
func AcquireAccount(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	registerBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"name":     "Test User",
	})
	resp, err := http.Post(baseURL+"/api/users", "application/json", bytes.NewReader(registerBody))
	if err != nil {
		t.Fatalf("Registration request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		// Might already exist from a previous run, try to log in anyway
		t.Logf("Registration returned %d (might already exist)", resp.StatusCode)
	}

	tokenBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err = http.Post(baseURL+"/api/users/token", "application/json", bytes.NewReader(tokenBody))
	if err != nil {
		t.Fatalf("Token request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Token request returned %d", resp.StatusCode)
	}

	var token struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		t.Fatalf("Failed to decode token response: %v", err)
	}
	if token.Token == "" {
		t.Fatal("Access token is empty")
	}

	return token.Token
}

// AuthedRequest builds a request with the Authorization header set
func AuthedRequest(t *testing.T, method, url, token string, body []byte) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("Failed to build %s %s: %v", method, url, err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
