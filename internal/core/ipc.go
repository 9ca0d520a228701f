package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gotk3/gotk3/glib"

	"github.com/oxidane/netbar/internal/config"
)

// ipcReplyTimeout bounds how long a connection waits for the main loop to
// answer a command.
const ipcReplyTimeout = 3 * time.Second

type IPCServer struct {
	app     *App
	config  *config.Config
	server  *net.UnixListener
	running bool
}

func NewIPCServer(app *App, cfg *config.Config) *IPCServer {
	return &IPCServer{
		app:     app,
		config:  cfg,
		running: false,
	}
}

func (s *IPCServer) Start() error {
	if s.running {
		return fmt.Errorf("IPC server already running")
	}

	// Remove existing socket file if it exists
	socketPath := s.config.SocketPath
	if _, err := os.Stat(socketPath); err == nil {
		os.Remove(socketPath)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}

	s.server = listener.(*net.UnixListener)
	s.running = true

	log.Printf("IPC server listening on %s", socketPath)

	go s.acceptConnections()

	return nil
}

func (s *IPCServer) acceptConnections() {
	for s.running {
		conn, err := s.server.Accept()
		if err != nil {
			if s.running {
				log.Printf("Error accepting connection: %v", err)
			}
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *IPCServer) handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		log.Printf("Error reading from connection: %v", err)
		return
	}

	message := strings.TrimSpace(string(buf[:n]))
	log.Printf("Received IPC message: %s", message)

	reply := s.handleMessage(message)
	if _, err := conn.Write([]byte(reply + "\n")); err != nil {
		log.Printf("Error writing reply: %v", err)
	}
}

// handleMessage runs a command on the main loop and returns its reply. The
// controllers are only ever touched from the main loop, so every command is
// marshalled through glib.IdleAdd and the reply is waited for here.
func (s *IPCServer) handleMessage(message string) string {
	switch message {
	case "notify-offline":
		return s.onMainLoop(func() string {
			if s.app.Registry().NotifyWhenOffline() {
				return "offline"
			}
			return "online"
		})
	case "expand":
		return s.onMainLoop(func() string {
			c := s.app.Registry().Active()
			if c == nil {
				return "no active indicator"
			}
			c.Expand()
			return "ok"
		})
	case "collapse":
		return s.onMainLoop(func() string {
			c := s.app.Registry().Active()
			if c == nil {
				return "no active indicator"
			}
			c.Collapse()
			return "ok"
		})
	case "status":
		return s.onMainLoop(func() string {
			c := s.app.Registry().Active()
			if c == nil {
				return "no active indicator"
			}
			return fmt.Sprintf("%s %v", c.Layout().Output, c.State())
		})
	case "quit":
		return s.onMainLoop(func() string {
			s.app.Quit()
			return "ok"
		})
	default:
		return fmt.Sprintf("unknown command: %s", message)
	}
}

func (s *IPCServer) onMainLoop(fn func() string) string {
	replyChan := make(chan string, 1)
	glib.IdleAdd(func() {
		replyChan <- fn()
	})

	select {
	case reply := <-replyChan:
		return reply
	case <-time.After(ipcReplyTimeout):
		return "timeout waiting for main loop"
	}
}

func (s *IPCServer) Stop() error {
	if !s.running {
		return nil
	}

	s.running = false

	if s.server != nil {
		s.server.Close()
	}

	socketPath := s.config.SocketPath
	if _, err := os.Stat(socketPath); err == nil {
		os.Remove(socketPath)
	}

	log.Println("IPC server stopped")
	return nil
}
