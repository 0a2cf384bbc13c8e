package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	bossName := flag.String("boss", "bulwark", "boss to fight: bulwark, warden, revenant, gravemind, or a comma list for a gauntlet")
	seed := flag.Uint64("seed", 0, "rng seed (0 picks a fixed default)")
	debug := flag.Bool("debug", false, "enable debug logging and overlays")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("bossrush")

	roster := strings.Split(*bossName, ",")
	game, err := NewGame(roster, *seed, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
