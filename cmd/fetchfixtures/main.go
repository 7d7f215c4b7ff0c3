package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	get "github.com/hashicorp/go-getter"

	"github.com/llGaetanll/McUtils/internal/fixture"
	"github.com/llGaetanll/McUtils/pkg/slime"
)

func main() {
	var (
		src    = flag.String("src", "", "go-getter source of the fixture pack, e.g. git::https://host/repo.git//testdata")
		out    = flag.String("o", "./testdata/fixtures", "output dir path")
		verify = flag.Bool("verify", true, "check every fetched slime fixture against the predicate")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *src == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.RemoveAll(*out); err != nil {
		log.Error("clear output", "path", *out, "error", err)
		os.Exit(1)
	}

	log.Info("downloading fixtures", "src", *src, "path", *out)
	if err := get.Get(*out, *src); err != nil {
		log.Error("download fixtures", "error", err)
		os.Exit(1)
	}
	log.Info("downloaded fixtures", "path", *out)

	if !*verify {
		return
	}

	bad := 0
	err := filepath.WalkDir(*out, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".txt") && !strings.HasSuffix(name, ".txt.zst") {
			return nil
		}
		f, err := fixture.Open(path)
		if err != nil {
			log.Warn("skipping unreadable fixture", "path", path, "error", err)
			return nil
		}
		if m := f.Mismatches(slime.IsSlimeChunk); len(m) > 0 {
			bad++
			log.Error("fixture disagrees with predicate", "path", path, "mismatches", len(m), "first", m[0].String())
			return nil
		}
		log.Info("fixture verified", "path", path, "seed", f.Seed, "chunks", f.Width()*f.Height())
		return nil
	})
	if err != nil {
		log.Error("walk fixtures", "error", err)
		os.Exit(1)
	}
	if bad > 0 {
		os.Exit(1)
	}
}
