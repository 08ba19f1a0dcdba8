// Command renju-engine runs the text protocol server over stdin/stdout.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"renju-engine/internal/engine"
	"renju-engine/internal/protocol"
)

var (
	ttMB       = flag.Int("ttmb", 64, "transposition table size in megabytes")
	depth      = flag.Int("depth", 0, "fixed search depth override (0 = use difficulty preset)")
	moveTimeS  = flag.Float64("movetime", 0, "per-move time budget in seconds (0 = use difficulty preset)")
	difficulty = flag.String("difficulty", "medium", "easy, medium, or hard")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine(*ttMB)

	switch *difficulty {
	case "easy":
		eng.SetDifficulty(engine.Easy)
	case "hard":
		eng.SetDifficulty(engine.Hard)
	default:
		eng.SetDifficulty(engine.Medium)
	}
	if *depth > 0 || *moveTimeS > 0 {
		d := *depth
		if d <= 0 {
			d = engine.DifficultySettings[engine.Medium].Depth
		}
		t := *moveTimeS
		if t <= 0 {
			t = engine.DifficultySettings[engine.Medium].TimeLimitS
		}
		eng.SetLimits(d, t)
	}

	srv := protocol.NewWithEngine(os.Stdin, os.Stdout, eng)
	srv.Run()
}
