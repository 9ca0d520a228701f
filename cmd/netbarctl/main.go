package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"
)

const defaultSocketPath = "/tmp/netbar_socket"

// sendMessage writes a command to the daemon's socket and returns the reply.
func sendMessage(message string) (string, error) {
	socketPath := os.Getenv("NETBAR_SOCKET")
	if socketPath == "" {
		socketPath = defaultSocketPath
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return "", fmt.Errorf("failed to connect to netbar socket: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(message)); err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: netbarctl notify-offline | expand | collapse | status | quit\n")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	command := os.Args[1]
	switch command {
	case "notify-offline", "expand", "collapse", "status", "quit":
	default:
		usage()
	}

	reply, err := sendMessage(command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(reply)

	// notify-offline doubles as an exit-code probe for scripts.
	if command == "notify-offline" && reply == "offline" {
		os.Exit(2)
	}
}
