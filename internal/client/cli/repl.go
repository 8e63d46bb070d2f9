package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	activity()
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	list(ctx context.Context) error
	listShared(ctx context.Context) error
	refresh(ctx context.Context, args []string) error
	upload(ctx context.Context, args []string) error
	remove(ctx context.Context, args []string) error
	star(ctx context.Context, args []string) error
	share(ctx context.Context, args []string) error
	link(ctx context.Context, args []string) error
	download(ctx context.Context, args []string) error
	downloadShared(ctx context.Context, args []string) error
	unshare(ctx context.Context, args []string) error
	search(args []string)
	sortBy(args []string) error
}

const loggedInHelp = `Available commands:
  list                  show your files (current search and sort applied)
  shared                show files shared with you
  refresh [sort] [filter]  re-fetch from the server (sort: newest|oldest|alphabetical|size, filter: uploaded|shared)
  search [text]         filter listings by filename; no argument clears the search
  sort <newest|alphabetical>  reorder your files locally
  upload <path>         upload a file
  download <id>         print a download URL for one of your files
  fetch <id>            print a download URL for a file shared with you
  delete <id>           delete one of your files
  star <id>             toggle the star on one of your files
  share <id> <email>    share a file with another user
  link <id> [minutes]   generate a public link (default expiry 60 minutes)
  unshare <id>          remove a file someone shared with you
  logout, exit`

// runREPL starts a read-eval-print loop for the file-sharing client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Every non-empty line counts as
// user activity. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed here so individual
// handlers stay focused on their operation.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	report := func(err error) {
		if err != nil {
			printlnFn("Error:", err)
		}
	}

	for {
		printlnFn(fmt.Sprintf("fs> %s", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		a.activity()

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(loggedInHelp)
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "l", "list":
			report(a.list(ctx))

		case "shared":
			report(a.listShared(ctx))

		case "refresh":
			report(a.refresh(ctx, args))

		case "search":
			a.search(args)

		case "sort":
			report(a.sortBy(args))

		case "upload":
			report(a.upload(ctx, args))

		case "download":
			report(a.download(ctx, args))

		case "fetch":
			report(a.downloadShared(ctx, args))

		case "delete":
			report(a.remove(ctx, args))

		case "star":
			report(a.star(ctx, args))

		case "share":
			report(a.share(ctx, args))

		case "link":
			report(a.link(ctx, args))

		case "unshare":
			report(a.unshare(ctx, args))

		case "logout":
			report(a.Logout(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
