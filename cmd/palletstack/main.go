// PalletStack: pallet packing and load validation
//
// A command-line tool that packs box lists onto pallets, stacks pallets
// into multi-floor loads and checks stacks, trucks and rooms against
// physical and logistic load rules.
//
// Build:
//   go build -o palletstack ./cmd/palletstack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o palletstack.exe ./cmd/palletstack
//   GOOS=darwin  GOARCH=arm64 go build -o palletstack-darwin ./cmd/palletstack
//
// Version information is injected with -ldflags:
//   go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/palletstack

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/piwi3910/PalletStack/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// PALLETSTACK_CONFIG may come from a local .env file
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
