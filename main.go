package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sanguo/ai"
	"sanguo/engine"
	"sanguo/relay"
)

func main() {
	serve := flag.Bool("serve", false, "run the websocket relay instead of a local match")
	agents := flag.String("agents", "normal,normal", "comma-separated AI difficulties for a local match")
	seed := flag.Int64("seed", 0, "shuffle seed, 0 for time-based")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *serve {
		runRelay()
		return
	}
	runLocalMatch(*agents, *seed)
}

func runRelay() {
	cfg, err := relay.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("bad relay configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := relay.NewServer(cfg)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatal().Err(err).Msg("relay stopped")
	}
}

func runLocalMatch(agents string, seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var difficulties []ai.Difficulty
	for _, name := range strings.Split(agents, ",") {
		d, err := parseDifficulty(strings.TrimSpace(name))
		if err != nil {
			log.Fatal().Err(err).Msg("bad agent list")
		}
		difficulties = append(difficulties, d)
	}

	e, err := engine.Local(difficulties, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up match")
	}

	winner, turns := e.Run()
	if winner == "" {
		fmt.Printf("No winner after %d turns\n", turns)
		return
	}
	for _, p := range e.State.Players {
		if p.ID == winner {
			fmt.Printf("%s wins after %d turns\n", p.Name, turns)
			return
		}
	}
}

func parseDifficulty(name string) (ai.Difficulty, error) {
	switch name {
	case "easy":
		return ai.Easy, nil
	case "normal":
		return ai.Normal, nil
	case "hard":
		return ai.Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", name)
}
