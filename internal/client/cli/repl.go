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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Publish(ctx context.Context) error
	MyPage(ctx context.Context) error
	UploadAvatar(ctx context.Context, file string) error
	View(ctx context.Context, path string) error
	Serve(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, view <path>, serve, reset, exit"
	helpSignedIn  = "Available commands: profile, edit, avatar <file>, publish, mypage, view <path>, serve, reset, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  help, register, login, view <path>, serve, reset, exit | quit
//
//	Logged in additionally:
//	  profile, edit, avatar <file>, publish, mypage, logout
//
// Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "profile":
			cmdErr = a.ShowProfile(ctx)

		case "edit":
			cmdErr = a.EditProfile(ctx)

		case "publish":
			cmdErr = a.Publish(ctx)

		case "mypage":
			cmdErr = a.MyPage(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <file>")
				continue
			}
			cmdErr = a.UploadAvatar(ctx, args[0])

		case "view":
			if len(args) == 0 {
				printlnFn("Usage: view <path>")
				continue
			}
			cmdErr = a.View(ctx, args[0])

		case "serve":
			cmdErr = a.Serve(ctx)

		case "reset":
			cmdErr = a.Reset(ctx)

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

func needsLogin(cmd string) bool {
	switch cmd {
	case "logout", "profile", "edit", "publish", "mypage", "avatar":
		return true
	}
	return false
}
