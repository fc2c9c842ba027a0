package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"raindrop/assets"
	"raindrop/pkg/sharepage"
	"raindrop/pkg/sharepage/htmldom"
	"raindrop/pkg/sharepage/termview"
	htmlTemplates "raindrop/pkg/templates"
)

var errServerURL = errors.New("missing server url")

func clientLogLevel() uint8 {
	var system System
	if err := env.Parse(&system); err != nil {
		return 1
	}
	return system.LogLevel
}

func serverURL(fset *flag.FlagSet, args []string) (string, error) {
	if err := fset.Parse(args); err != nil {
		return "", err
	}
	if fset.NArg() != 1 {
		return "", fmt.Errorf("%w\n%s", errServerURL, usage)
	}

	return fset.Arg(0), nil
}

// snapshot renders the share page of the server at baseURL into w.
func snapshot(ctx context.Context, baseURL string, client sharepage.Doer, w io.Writer, logger *slog.Logger) (sharepage.Result, error) {
	tmpl, err := htmlTemplates.New(assets.FS, "")
	if err != nil {
		return sharepage.Result{}, err
	}

	shell, err := tmpl.Page()
	if err != nil {
		return sharepage.Result{}, err
	}

	doc, err := htmldom.ParseString(shell)
	if err != nil {
		return sharepage.Result{}, err
	}

	slots, err := doc.Slots()
	if err != nil {
		return sharepage.Result{}, err
	}

	renderer, err := sharepage.NewRenderer(slots)
	if err != nil {
		return sharepage.Result{}, err
	}

	fetcher := sharepage.NewFetcher(baseURL, client, logger)
	res := sharepage.NewPage(fetcher, renderer, logger).Run(ctx)

	return res, doc.Render(w)
}

func runSnapshot(args []string) error {
	fset := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	out := fset.String("o", "", "write the page to this file instead of stdout")

	baseURL, err := serverURL(fset, args)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, clientLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	res, err := snapshot(ctx, baseURL, http.DefaultClient, w, logger)
	if err != nil {
		return err
	}
	if res.Failed {
		return fmt.Errorf("share page rendered with error: %s", res.Reason)
	}

	return nil
}

// lockedBuffer collects log lines while the terminal is owned by the UI.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}

func runView(args []string) error {
	fset := flag.NewFlagSet("view", flag.ContinueOnError)

	baseURL, err := serverURL(fset, args)
	if err != nil {
		return err
	}

	logs := &lockedBuffer{}
	defer logs.WriteTo(os.Stderr)
	logger := newLogger(logs, clientLogLevel())

	view := termview.New(baseURL)
	renderer, err := sharepage.NewRenderer(view.Slots())
	if err != nil {
		return err
	}

	fetcher := sharepage.NewFetcher(baseURL, http.DefaultClient, logger)
	page := sharepage.NewPage(fetcher, renderer, logger)

	app := tview.NewApplication().SetRoot(view.Root(), true)
	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return ev
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The request runs off the UI goroutine; only rendering goes through the event loop.
	go func() {
		info, err := fetcher.Fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		app.QueueUpdateDraw(func() {
			page.Complete(info, err)
		})
	}()

	return app.Run()
}
