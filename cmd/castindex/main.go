// Command castindex loads a cast file and answers questions about which
// actors appeared in which movies.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "castindex: .env: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("castindex"),
		kong.Description("Query and edit a movie/actor cast file."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first signal, a second one kills the process.
	context.AfterFunc(ctx, stop)

	a, err := newApp(cli.Globals, os.Stdin, os.Stdout, os.Stderr)
	kctx.FatalIfErrorf(err)

	err = a.serve(ctx, func(ctx context.Context) error {
		kctx.BindTo(ctx, (*context.Context)(nil))
		return kctx.Run(a)
	})
	if errors.Is(err, context.Canceled) {
		os.Exit(130)
	}
	kctx.FatalIfErrorf(err)
}
