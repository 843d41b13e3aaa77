// Command paykit talks to the payment service from the shell and runs the
// local sandbox.
//
//	paykit invoice create --price 10 --currency USD --env test
//	paykit bill deliver 6EBQR37MgDJPfEiLY3jtRq --bill-token 6EBQR37M...
//	paykit rates EUR
//	paykit sandbox --port 8089
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain runs one command with interrupts cancelling its context. The
// signal handler is released before the exit code is returned.
func realMain(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, args, stdout, stderr)
}
