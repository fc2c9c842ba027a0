package sharepage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"raindrop/pkg/constants"
	v1 "raindrop/pkg/models/api/v1"
)

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNullPageInfo is returned for a successful response whose body is JSON null.
var ErrNullPageInfo = errors.New("page info is null")

// FetchError is a failed page info request reduced to a human-readable reason.
type FetchError struct {
	Reason string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *FetchError) Error() string {
	return e.Reason
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher requests the page info of a share server.
type Fetcher struct {
	base   string
	client Doer
	logger *slog.Logger
}

func NewFetcher(baseURL string, client Doer, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &Fetcher{
		base:   strings.TrimRight(baseURL, "/"),
		client: client,
		logger: logger,
	}
}

// Fetch sends exactly one GET /api/info. Failures come back as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context) (v1.PageInfo, error) {
	log := f.logger.With(
		slog.String("func", "Fetch"),
		slog.String("url", f.base+constants.InfoPath),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base+constants.InfoPath, nil)
	if err != nil {
		return v1.PageInfo{}, &FetchError{Reason: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		log.Error("page info request failed", slog.String("error", err.Error()))
		return v1.PageInfo{}, &FetchError{Reason: err.Error(), Err: err}
	}
	defer res.Body.Close()

	// The body is JSON on failures too, so decode before looking at the status.
	var info *v1.PageInfo
	if err = json.NewDecoder(res.Body).Decode(&info); err != nil {
		log.Error("failed to decode page info", slog.Int("status", res.StatusCode), slog.String("error", err.Error()))
		return v1.PageInfo{}, &FetchError{Reason: err.Error(), Status: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		reason := constants.FallbackReason
		if info != nil && strings.TrimSpace(info.Error) != "" {
			reason = info.Error
		}
		log.Error("page info request rejected", slog.Int("status", res.StatusCode), slog.String("reason", reason))
		return v1.PageInfo{}, &FetchError{Reason: reason, Status: res.StatusCode}
	}

	if info == nil {
		log.Error("page info is null", slog.Int("status", res.StatusCode))
		return v1.PageInfo{}, &FetchError{Reason: ErrNullPageInfo.Error(), Status: res.StatusCode, Err: ErrNullPageInfo}
	}

	return *info, nil
}
