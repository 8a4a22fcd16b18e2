package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Predict(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
}

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF or on "exit"/"quit". Handler errors are reported by the handlers.
//
//	Not logged in: help, login, exit
//	Logged in:     help, predict <sl> <sw> <pl> <pw>, (l)ist [limit] [offset], logout, exit
//
// The reader is shared with the command handlers so prompts inside a command
// consume the following lines.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("iris> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: predict <sl> <sw> <pl> <pw>, (l)ist [limit] [offset], logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "predict", "p":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			_ = a.Predict(ctx, args)

		case "l", "list":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			_ = a.List(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
