package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/jot"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to append")
	adapters := flag.String("adapters", "fs,sqlite,badger", "Comma-separated adapters to benchmark")
	keep := flag.Bool("keep", false, "Keep the benchmark vaults after running")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark (%d notes)\n", *count)
	for _, name := range strings.Split(*adapters, ",") {
		name = strings.TrimSpace(name)
		if err := bench(name, *count, *keep, logger); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}
	}
	fmt.Printf("--------------------------------------------------\n")
}

func bench(adapter string, count int, keep bool, logger *slog.Logger) error {
	dir, err := os.MkdirTemp("", "jot_bench_"+adapter+"_")
	if err != nil {
		return err
	}
	if keep {
		fmt.Printf("Keeping bench dir: %s\n", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	ctx := context.Background()
	vault, err := jot.New(dir, jot.WithAdapter(adapter), jot.WithLogger(logger))
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		if _, err := vault.AddNote(ctx, fmt.Sprintf("Benchmark note %d", i)); err != nil {
			vault.Close()
			return err
		}
	}
	appendDur := time.Since(start)
	if err := vault.Close(); err != nil {
		return err
	}

	// Re-open to measure a cold read, as a new CLI invocation would.
	vault, err = jot.New(dir, jot.WithAdapter(adapter), jot.WithLogger(logger))
	if err != nil {
		return err
	}
	defer vault.Close()

	start = time.Now()
	list, err := vault.ListNotes(ctx)
	if err != nil {
		return err
	}
	listDur := time.Since(start)

	fmt.Printf("  %-7s append: %-12v (%v/op)  list: %v (items: %d)\n",
		adapter, appendDur, appendDur/time.Duration(max(count, 1)), listDur, len(list))
	return nil
}
