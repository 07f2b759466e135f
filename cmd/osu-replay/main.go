// Command osu-replay prints the contents of an osu! replay and, when a songs
// directory is given, the beatmap it was played on.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelindar/osu-sdk"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	replayPath = kingpin.Arg("replay", "Replay file (.osr)").Required().ExistingFile()
	mapsDir    = kingpin.Flag("maps", "Directory searched for the matching beatmap").Short('m').ExistingDir()
	frameCount = kingpin.Flag("frames", "Number of frames to print").Default("0").Short('f').Int()
	progress   = kingpin.Flag("at", "Progress along the first slider, from 0 to 1").Default("0.5").Float64()
	verbose    = kingpin.Flag("verbose", "Log debug output to stderr").Short('v').Bool()
)

func main() {
	kingpin.Version("0.1.0")
	kingpin.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(os.Stdout, logger); err != nil {
		logger.Error("failed", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, logger *slog.Logger) error {
	dir, name := filepath.Split(*replayPath)
	if dir == "" {
		dir = "."
	}

	replays, err := osu.Open(dir, osu.WithLogger(logger))
	if err != nil {
		return err
	}
	defer replays.Close()

	replay, err := replays.Replay(name)
	if err != nil {
		return err
	}

	printReplay(w, replay, *frameCount)
	if *mapsDir == "" {
		return nil
	}

	songs, err := osu.Open(*mapsDir, osu.WithLogger(logger))
	if err != nil {
		return err
	}
	defer songs.Close()

	beatmap, path, err := songs.BeatmapFor(replay)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nbeatmap    %s\n", path)
	return printBeatmap(w, beatmap, *progress)
}

func printReplay(w io.Writer, r *osu.Replay, frames int) {
	fmt.Fprintf(w, "player     %s\n", r.Player)
	fmt.Fprintf(w, "mode       %s (version %d)\n", r.Mode, r.Version)
	fmt.Fprintf(w, "played     %s\n", r.Time().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "map hash   %s\n", r.MapHash)
	fmt.Fprintf(w, "score      %d (max combo %d, perfect %t)\n", r.Score, r.MaxCombo, r.Perfect)
	fmt.Fprintf(w, "hits       300:%d 100:%d 50:%d geki:%d katu:%d miss:%d\n",
		r.Count300, r.Count100, r.Count50, r.CountGeki, r.CountKatu, r.CountMiss)
	fmt.Fprintf(w, "mods       %s\n", r.Mods)
	fmt.Fprintf(w, "frames     %d (seed %d)\n", len(r.Frames), r.Seed)
	if r.Mods.Has(osu.ModTargetPractice) {
		fmt.Fprintf(w, "accuracy   %.2f\n", r.Accuracy)
	}

	if frames <= 0 {
		return
	}

	for at, frame := range r.Timeline() {
		if frames--; frames < 0 {
			break
		}
		fmt.Fprintf(w, "  %8dms  x=%7.2f y=%7.2f keys=%05b\n", at, frame.X, frame.Y, frame.Keys)
	}
}

func printBeatmap(w io.Writer, b *osu.Beatmap, λ float64) error {
	meta := b.Metadata
	fmt.Fprintf(w, "title      %s - %s [%s] by %s\n", meta.Artist, meta.Title, meta.Version, meta.Creator)
	fmt.Fprintf(w, "difficulty HP%.1f CS%.1f OD%.1f AR%.1f\n",
		b.Difficulty.HPDrainRate, b.Difficulty.CircleSize, b.Difficulty.OverallDifficulty, b.Difficulty.ApproachRate)

	count := b.Count()
	fmt.Fprintf(w, "objects    %d circles, %d sliders, %d spinners, %d holds\n",
		count[osu.KindCircle], count[osu.KindSlider], count[osu.KindSpinner], count[osu.KindHold])

	for i := range b.HitObjects {
		obj := &b.HitObjects[i]
		if obj.Kind != osu.KindSlider {
			continue
		}

		at, err := obj.Position(λ)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "slider     %s at %dms, position at %.2f is (%d, %d)\n",
			obj.Slider.Curve, obj.Time, λ, at.X, at.Y)
		break
	}
	return nil
}
