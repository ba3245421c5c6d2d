package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes.
const (
	exitOK     = 0
	exitFatal  = 1
	exitPolicy = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and maps the outcome to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var gate *gateError
	if errors.As(err, &gate) {
		return exitPolicy
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitFatal
}

// gateError reports an assessment whose average risk exceeded the
// configured maximum.
type gateError struct {
	average float64
	max     float64
}

func (e *gateError) Error() string {
	return fmt.Sprintf("average risk score %.2f exceeds maximum %.2f", e.average, e.max)
}
