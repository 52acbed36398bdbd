package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	AddCourse(ctx context.Context, code string) error
	Explore(ctx context.Context) error
	Like(ctx context.Context) error
	Dislike(ctx context.Context) error
	Matches(ctx context.Context) error
	AddEvent(ctx context.Context) error
	Events(ctx context.Context, month string) error
	Avail(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the StudyBuddy CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, on a cancelled ctx, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help              - show available commands
//	  - signup            - create an account
//	  - login             - authenticate
//	  - exit | quit       - leave the program
//
//	Logged in:
//	  - profile           - set up the profile and send it to the backend
//	  - addcourse <code>  - add a course to the profile
//	  - explore           - load study partners sharing a course
//	  - like | y          - like the current card
//	  - dislike | n       - pass on the current card
//	  - matches           - list matched users
//	  - addevent          - plan a study session
//	  - events [yyyy-mm]  - list study sessions of a month
//	  - avail <yyyy-mm-dd> [windows...] - set availability for a day
//	  - logout            - log out
//
// Errors returned by command handlers are printed and otherwise ignored, so
// one failed command does not end the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sb %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, addcourse <code>, explore, like (y), dislike (n), matches, addevent, events [yyyy-mm], avail <yyyy-mm-dd> [windows], logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			cmdErr = a.SignUp(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "addcourse":
			if len(args) == 0 {
				printlnFn("Usage: addcourse <code>")
				continue
			}
			cmdErr = a.AddCourse(ctx, strings.Join(args, " "))

		case "explore":
			cmdErr = a.Explore(ctx)

		case "like", "y":
			cmdErr = a.Like(ctx)

		case "dislike", "n":
			cmdErr = a.Dislike(ctx)

		case "matches":
			cmdErr = a.Matches(ctx)

		case "addevent":
			cmdErr = a.AddEvent(ctx)

		case "events":
			month := ""
			if len(args) > 0 {
				month = args[0]
			}
			cmdErr = a.Events(ctx, month)

		case "avail":
			if len(args) == 0 {
				printlnFn("Usage: avail <yyyy-mm-dd> [morning|day|night ...]")
				continue
			}
			cmdErr = a.Avail(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
