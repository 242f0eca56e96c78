package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/config"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error

	Feed(ctx context.Context) error
	Tab(ctx context.Context, name string) error
	Refresh(ctx context.Context) error
	Focus(ctx context.Context) error
	Post(ctx context.Context) error
	Comment(ctx context.Context, postID string) error
	Delete(ctx context.Context, postID string) error
	CacheInfo(ctx context.Context) error

	Friends(ctx context.Context) error
	AddFriend(ctx context.Context, userID string) error
	Unfriend(ctx context.Context, userID string) error
	Stats(ctx context.Context) error
	SetHidden(ctx context.Context, hidden bool) error
	Upload(ctx context.Context, path string) error
}

const (
	guestHelp = "Available commands: register, login, help, exit"
	userHelp  = "Available commands: feed, tab <all|friends|mine>, refresh, focus, post, comment <post-id>, " +
		"delete <post-id>, cache, friends, addfriend <user-id>, unfriend <user-id>, stats, hide, unhide, " +
		"upload <path>, me, logout, help, exit"
)

// runREPL reads one command per line and dispatches it to a. Handler errors
// are shown to the user and the loop carries on. It returns on EOF or on
// "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nomad %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("error:", err)
		}
	}
}

// withArg runs fn with the first argument, or prints usage when it is missing.
func withArg(args []string, usage string, fn func(string) error) error {
	if len(args) == 0 {
		printlnFn("Usage:", usage)
		return nil
	}
	return fn(args[0])
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(userHelp)
		} else {
			printlnFn(guestHelp)
		}
		printlnFn(config.EnvUsage())
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		printlnFn("Please login first. " + guestHelp)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "me":
		return a.Me(ctx)
	case "feed", "l":
		return a.Feed(ctx)
	case "tab":
		return withArg(args, "tab <all|friends|mine>", func(name string) error { return a.Tab(ctx, name) })
	case "refresh":
		return a.Refresh(ctx)
	case "focus":
		return a.Focus(ctx)
	case "post":
		return a.Post(ctx)
	case "comment":
		return withArg(args, "comment <post-id>", func(id string) error { return a.Comment(ctx, id) })
	case "delete":
		return withArg(args, "delete <post-id>", func(id string) error { return a.Delete(ctx, id) })
	case "cache":
		return a.CacheInfo(ctx)
	case "friends":
		return a.Friends(ctx)
	case "addfriend":
		return withArg(args, "addfriend <user-id>", func(id string) error { return a.AddFriend(ctx, id) })
	case "unfriend":
		return withArg(args, "unfriend <user-id>", func(id string) error { return a.Unfriend(ctx, id) })
	case "stats":
		return a.Stats(ctx)
	case "hide":
		return a.SetHidden(ctx, true)
	case "unhide":
		return a.SetHidden(ctx, false)
	case "upload":
		return withArg(args, "upload <path>", func(path string) error { return a.Upload(ctx, path) })
	}

	printlnFn("Unknown command:", cmd)
	return nil
}
