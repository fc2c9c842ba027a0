package sharepage

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	v1 "raindrop/pkg/models/api/v1"
)

type State int

const (
	Loading State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "done"
	}
	return "loading"
}

// Result is the outcome of one page load.
type Result struct {
	Info   v1.PageInfo
	Reason string
	Failed bool
}

type infoFetcher interface {
	Fetch(ctx context.Context) (v1.PageInfo, error)
}

// Page drives one page load: Loading until the page info arrives, then Done.
type Page struct {
	fetcher  infoFetcher
	renderer *Renderer
	logger   *slog.Logger

	mu     sync.Mutex
	state  State
	result Result
}

func NewPage(fetcher infoFetcher, renderer *Renderer, logger *slog.Logger) *Page {
	return &Page{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger,
	}
}

func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Run fetches the page info and renders it. Only the first call does any work;
// later calls return the same Result.
func (p *Page) Run(ctx context.Context) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Done {
		return p.result
	}

	info, err := p.fetcher.Fetch(ctx)
	return p.complete(info, err)
}

// Complete moves the page to Done with an already known outcome.
func (p *Page) Complete(info v1.PageInfo, err error) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Done {
		return p.result
	}

	return p.complete(info, err)
}

func (p *Page) complete(info v1.PageInfo, err error) Result {
	if err != nil {
		reason := Reason(err)
		p.logger.Error("failed to load share page", slog.String("error", reason))
		p.renderer.ShowError(reason)
		p.result = Result{Reason: reason, Failed: true}
	} else {
		p.renderer.Apply(info)
		p.result = Result{Info: info}
	}

	p.state = Done
	return p.result
}

// Reason returns the text shown to the user for err.
func Reason(err error) string {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Reason
	}

	return err.Error()
}
