// Command robots-server runs the authoritative game server: a hub
// coordinating accepted TCP clients and a single game manager,
// spec.md §§4.2–4.4.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"robots/internal/gameserver"
	"robots/internal/hub"
	"robots/internal/logging"
	"robots/internal/model"
	"robots/internal/netio"
)

type serverFlags struct {
	name            string
	playersCount    uint
	sizeX, sizeY    uint
	gameLength      uint
	bombTimer       uint
	explosionRadius uint
	initialBlocks   uint
	turnDuration    uint64
	port            uint
	seed            uint
}

// dualFlag registers both a long and a short name pointing at the
// same destination, matching the server CLI table of spec.md §6.
func dualFlag(fs *flag.FlagSet, dst *string, short, long, def, usage string) {
	fs.StringVar(dst, short, def, usage)
	fs.StringVar(dst, long, def, usage)
}

func dualUintFlag(fs *flag.FlagSet, dst *uint, short, long string, def uint, usage string) {
	fs.UintVar(dst, short, def, usage)
	fs.UintVar(dst, long, def, usage)
}

func dualUint64Flag(fs *flag.FlagSet, dst *uint64, short, long string, def uint64, usage string) {
	fs.Uint64Var(dst, short, def, usage)
	fs.Uint64Var(dst, long, def, usage)
}

func parseServerFlags(args []string) (serverFlags, error) {
	var f serverFlags
	var name string

	fs := flag.NewFlagSet("robots-server", flag.ContinueOnError)
	dualFlag(fs, &name, "n", "server-name", "", "advertised server name (<=255 bytes)")
	dualUintFlag(fs, &f.playersCount, "c", "players-count", 0, "seats per game")
	dualUintFlag(fs, &f.sizeX, "x", "size-x", 0, "board width")
	dualUintFlag(fs, &f.sizeY, "y", "size-y", 0, "board height")
	dualUintFlag(fs, &f.gameLength, "l", "game-length", 0, "turns per game")
	dualUintFlag(fs, &f.bombTimer, "b", "bomb-timer", 0, "bomb fuse length")
	dualUintFlag(fs, &f.explosionRadius, "e", "explosion-radius", 0, "explosion arm length")
	dualUintFlag(fs, &f.initialBlocks, "k", "initial-blocks", 0, "random blocks at start")
	dualUint64Flag(fs, &f.turnDuration, "d", "turn-duration", 0, "wall-clock turn length, ms")
	dualUintFlag(fs, &f.port, "p", "port", 0, "listen port")
	dualUintFlag(fs, &f.seed, "s", "seed", 0, "RNG seed (defaults to current time)")

	if err := fs.Parse(args); err != nil {
		return f, err
	}

	f.name = name
	if len(f.name) > 255 {
		return f, fmt.Errorf("server name exceeds 255 bytes")
	}
	if f.playersCount == 0 || f.playersCount > 255 {
		return f, fmt.Errorf("players-count must be in (0,255]")
	}
	if f.sizeX == 0 || f.sizeX > 65535 || f.sizeY == 0 || f.sizeY > 65535 {
		return f, fmt.Errorf("size-x/size-y must be in (0,65535]")
	}
	if f.gameLength == 0 || f.gameLength > 65535 {
		return f, fmt.Errorf("game-length must be in (0,65535]")
	}
	if f.bombTimer == 0 || f.bombTimer > 65535 {
		return f, fmt.Errorf("bomb-timer must be in (0,65535]")
	}
	if f.explosionRadius > 65535 {
		return f, fmt.Errorf("explosion-radius must be in [0,65535]")
	}
	if f.initialBlocks > 65535 {
		return f, fmt.Errorf("initial-blocks must be in [0,65535]")
	}
	if f.turnDuration == 0 {
		return f, fmt.Errorf("turn-duration must be > 0")
	}
	if f.port == 0 || f.port > 65535 {
		return f, fmt.Errorf("port must be in (0,65535]")
	}
	if f.seed == 0 {
		f.seed = uint(time.Now().UnixNano())
	}
	return f, nil
}

func (f serverFlags) toParams() model.ServerParams {
	return model.ServerParams{
		Name:            f.name,
		PlayersCount:    uint8(f.playersCount),
		SizeX:           uint16(f.sizeX),
		SizeY:           uint16(f.sizeY),
		GameLength:      uint16(f.gameLength),
		ExplosionRadius: uint16(f.explosionRadius),
		BombTimer:       uint16(f.bombTimer),
		InitialBlocks:   uint16(f.initialBlocks),
		TurnDurationMs:  f.turnDuration,
		Seed:            uint32(f.seed),
	}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logging.Default()

	f, err := parseServerFlags(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		log.Printf("%v", err)
		return 1
	}

	params := f.toParams()
	h := hub.New(params, log)
	mgr := gameserver.New(params, h, log)
	go mgr.Run()

	addr := fmt.Sprintf(":%d", f.port)
	if err := netio.Listen(context.Background(), addr, h, log); err != nil {
		log.Printf("listen: %v", err)
		return 1
	}
	return 0
}
