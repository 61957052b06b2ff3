package main

import (
	"context"
	"fmt"
	"os"

	"github.com/couchcryptid/quake-risk-service/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
