package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pdf-splitter/internal/config"
)

func main() {
	log.SetOutput(os.Stderr)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "split":
			exit(runSplit(os.Args[2:]))
			return
		case "plan":
			exit(runPlan(os.Args[2:]))
			return
		case "verify":
			exit(runVerify(os.Args[2:]))
			return
		}
	}
	usage()
	os.Exit(2)
}

func usage() {
	log.Println("Usage:")
	log.Println("  pdf-splitter split -batch 10 [-test-page N] [-out DIR] [-workers N] [flags] file.pdf ...")
	log.Println("  pdf-splitter plan -batch 10 [-test-page N] [-out DIR] file.pdf ...")
	log.Println("  pdf-splitter verify part_0000_0009.pdf ...")
}

// exit завершает процесс: код 2 при неверных аргументах, 1 при ошибке работы, 0 после -h.
func exit(err error) {
	if err == nil {
		return
	}

	// справку flag уже напечатал
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}

	log.Printf("[FATAL] %v", err)

	if config.IsUsage(err) {
		os.Exit(2)
	}
	os.Exit(1)
}

// signalContext: контекст с отменой по SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			log.Println("[WARN] interrupted, stopping after current parts")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sig)
		cancel()
	}
}
