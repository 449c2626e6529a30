package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bartek5186/tourops/internal/cli"
	conf "github.com/bartek5186/tourops/internal/config"
	"github.com/bartek5186/tourops/internal/jobs"
	logs "github.com/bartek5186/tourops/internal/logs"
)

var ver = "1.0.0"

// skróty komend konsoli -> nazwy jobów
var aliases = map[string]string{
	"reconcile": "reconcile-bookings",
	"locations": "migrate-locations",
	"blocks":    "seed-tour-blocks",
	"email":     "test-email",
}

func main() {
	cfgPath := os.Getenv(cli.ConfigEnv)
	cfg, err := conf.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка конфигурации:", err)
		os.Exit(1)
	}
	log := logs.New(cfg.LogFile, true)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := jobs.NewRunner(log, cfg)

	// Prosta pętla poleceń w terminalu
	fmt.Println("tourops", ver)
	fmt.Println("Команды: reconcile | locations | blocks | email | jobs | paths | quit")
	lines := readLines(os.Stdin)

	for {
		fmt.Print("> ")
		line, ok := nextLine(ctx, lines)
		if !ok {
			fmt.Println()
			return // EOF/Ctrl+D albo Ctrl+C
		}
		cmd := strings.TrimSpace(strings.ToLower(line))

		switch cmd {
		case "reconcile", "locations", "blocks", "email":
			name := aliases[cmd]
			if cmd == "blocks" && !confirm(ctx, lines, "Сидер блоков не идемпотентен. Продолжить? [y/N] ") {
				fmt.Println("Отменено")
				continue
			}
			if err := runner.Run(ctx, name); err != nil {
				fmt.Println("Ошибка:", err)
				continue
			}
			fmt.Println("OK")
		case "jobs":
			for _, n := range jobs.Names() {
				s, _ := jobs.Get(n)
				fmt.Printf("  %-20s %s\n", n, s.Short)
			}
		case "paths":
			fmt.Println("Лог:", orDash(cfg.LogFile))
			fmt.Println("Config:", orDash(cfgPath))
			fmt.Println("DB driver:", cfg.DB.Driver)
		case "quit", "exit":
			return
		case "":
			// enter – ignoruj
		default:
			fmt.Println("Неизвестная команда. Используйте: reconcile | locations | blocks | email | jobs | paths | quit")
		}

		if ctx.Err() != nil {
			return
		}
	}
}

// readLines czyta wejście w osobnej goroutine, pętla czeka na linię albo na ctx.
func readLines(r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			out <- sc.Text()
		}
	}()
	return out
}

// nextLine: false przy końcu wejścia albo po przerwaniu.
func nextLine(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case l, ok := <-lines:
		return l, ok
	}
}

func confirm(ctx context.Context, lines <-chan string, prompt string) bool {
	fmt.Print(prompt)
	line, _ := nextLine(ctx, lines)
	a := strings.TrimSpace(strings.ToLower(line))
	return a == "y" || a == "yes" || a == "д" || a == "да"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
