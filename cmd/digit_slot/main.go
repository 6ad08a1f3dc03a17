package main

import (
	"context"
	"digit_slot/internal/app"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	issueToken := flag.Int("issue-token", 0, "print an access token for the given player id and exit")
	flag.Parse()

	a := app.NewApp()

	if *issueToken > 0 {
		tok, err := a.IssueToken(*issueToken)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(tok)
		return
	}

	// Wait for signal to stop
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Stopped")
}
