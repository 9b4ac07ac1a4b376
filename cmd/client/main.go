// Command robots-client bridges a TCP game server to a local UDP
// front-end renderer, per spec.md §4.5.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"robots/internal/clientstate"
	"robots/internal/logging"
	"robots/internal/sockopts"
	"robots/internal/wire"
)

type clientFlags struct {
	playerName    string
	serverAddress string
	guiAddress    string
	port          uint
}

// splitLastColon splits host:port addresses on the last colon, so an
// IPv6 literal host (itself colon-separated) still parses correctly.
func splitLastColon(addr string) (host, port string, err error) {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return "", "", fmt.Errorf("address %q missing port", addr)
	}
	return addr[:i], addr[i+1:], nil
}

func parseClientFlags(args []string) (clientFlags, error) {
	var f clientFlags
	fs := flag.NewFlagSet("robots-client", flag.ContinueOnError)
	fs.StringVar(&f.playerName, "n", "", "player name (<=255 bytes)")
	fs.StringVar(&f.serverAddress, "s", "", "game server address, host:port")
	fs.StringVar(&f.guiAddress, "d", "", "front-end GUI address, host:port")
	fs.UintVar(&f.port, "p", 0, "local UDP port to bind for the GUI bridge")

	if err := fs.Parse(args); err != nil {
		return f, err
	}

	if len(f.playerName) == 0 || len(f.playerName) > 255 {
		return f, fmt.Errorf("player name must be 1-255 bytes")
	}
	if _, _, err := splitLastColon(f.serverAddress); err != nil {
		return f, fmt.Errorf("server address: %w", err)
	}
	if _, _, err := splitLastColon(f.guiAddress); err != nil {
		return f, fmt.Errorf("gui address: %w", err)
	}
	if f.port == 0 || f.port > 65535 {
		return f, fmt.Errorf("port must be in (0,65535]")
	}
	return f, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logging.Default()

	f, err := parseClientFlags(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		log.Printf("%v", err)
		return 1
	}

	conn, err := net.Dial("tcp", f.serverAddress)
	if err != nil {
		log.Printf("dial server: %v", err)
		return 1
	}
	defer conn.Close()
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}

	lc := net.ListenConfig{Control: sockopts.Control}
	gui, err := lc.ListenPacket(context.Background(), "udp", fmt.Sprintf(":%d", f.port))
	if err != nil {
		log.Printf("bind gui socket: %v", err)
		return 1
	}
	defer gui.Close()
	guiConn := gui.(*net.UDPConn)

	guiAddr, err := net.ResolveUDPAddr("udp", f.guiAddress)
	if err != nil {
		log.Printf("resolve gui address: %v", err)
		return 1
	}

	log.Banner("robots-client", fmt.Sprintf("player=%s server=%s gui=%s", f.playerName, f.serverAddress, f.guiAddress))

	state := clientstate.New(f.playerName)
	server := wire.NewWriter(conn)

	serverReader := clientstate.NewServerReader(conn, state, guiConn, guiAddr)
	frontendReader := clientstate.NewFrontendReader(guiConn, state, server)

	errCh := make(chan error, 2)
	go func() { errCh <- serverReader.Run() }()
	go func() { errCh <- frontendReader.Run() }()

	if err := <-errCh; err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}
