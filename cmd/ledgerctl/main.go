// Command ledgerctl is the operator console for the ledger API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"ledger-backend/internal/apiclient"
	"ledger-backend/internal/logger"
	"ledger-backend/internal/session"
)

type env struct {
	server  string
	store   *session.FileStore
	session session.Session
	api     *apiclient.Client
}

type command struct {
	usage string
	auth  bool
	run   func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"login":         {"login <username>", false, cmdLogin},
	"logout":        {"logout", false, cmdLogout},
	"whoami":        {"whoami", true, cmdWhoami},
	"clients":       {"clients [filter]", true, cmdClients},
	"client":        {"client <id>", true, cmdClient},
	"history":       {"history payments|purchases [page]", true, cmdHistory},
	"summary":       {"summary", true, cmdSummary},
	"report":        {"report [-archive] <id> [dir]", true, cmdReport},
	"add-payment":   {"add-payment -client <id> [-date YYYY-MM-DD | -unknown-date] -type <type> -amount <n>", true, cmdAddPayment},
	"add-purchase":  {"add-purchase -client <id> [-date ...] -qty <n> -type <t> [-new-type] -class <c> [-new-class] -weight <n> -unit-price <n> [-total <n>]", true, cmdAddPurchase},
	"delete-client": {"delete-client <id>", true, cmdDeleteClient},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ledgerctl [-server URL] <command> [args]")
	fmt.Fprintln(os.Stderr)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}

func main() {
	server := flag.String("server", envOr("LEDGER_API", "http://localhost:8080"), "API base URL")
	sessionPath := flag.String("session", "", "Session file (default ~/.ledgerctl/session.json)")
	verbose := flag.Bool("v", false, "Log requests to stderr")
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		_ = logger.Init("development")
		defer logger.Sync()
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	path := *sessionPath
	if path == "" {
		var err error
		if path, err = session.DefaultPath(); err != nil {
			fail(err)
		}
	}
	e := &env{server: *server, store: session.NewFileStore(path)}
	e.api = apiclient.New(e.server, "")

	if cmd.auth {
		sess, token, err := e.store.Load()
		if errors.Is(err, session.ErrNoSession) {
			fail(errors.New("not logged in, run: ledgerctl login <username>"))
		}
		if err != nil {
			fail(err)
		}
		e.session = sess
		e.api.Token = token
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.run(ctx, e, flag.Args()[1:]); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
