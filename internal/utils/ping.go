package utils

import (
	"fmt"
	"net"
	"time"
)

// PingAddress checks if a TCP endpoint is reachable
func PingAddress(host, port string, timeout time.Duration) error {
	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingDatabase checks if the database endpoint is reachable
func PingDatabase(host, port string) error {
	return PingAddress(host, port, 1500*time.Millisecond)
}
