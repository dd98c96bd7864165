package jwtutil

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ClientRole is the role carried by tokens issued to API clients
const ClientRole = "client"

// Clients maps API client IDs to bcrypt hashes of their secrets
type Clients map[string]string

// ParseClients reads a comma-separated list of id:bcrypt-hash pairs
func ParseClients(value string) (Clients, error) {
	clients := make(Clients)
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, hash, ok := strings.Cut(entry, ":")
		if !ok || id == "" || hash == "" {
			return nil, fmt.Errorf("invalid API client entry %q, want id:bcrypt-hash", entry)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("API client %q: %w", id, err)
		}
		clients[id] = hash
	}
	return clients, nil
}

// Verify reports whether secret matches the stored hash for id
func (c Clients) Verify(id, secret string) bool {
	hash, ok := c[id]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// HashSecret hashes a client secret for use in API_CLIENTS
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
