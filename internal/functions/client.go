package functions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

// MaxScriptBytes caps the size of a fetched script.
const MaxScriptBytes = 5 * 1024 * 1024

// NewHTTPClient creates a client that follows at most five same-host redirects.
// A zero timeout leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			if req.URL.Host != via[0].URL.Host {
				return errors.New("redirect to different host blocked")
			}
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
}

// fetchText GETs rawURL and returns the body as text. Every failure is a NetworkError;
// status is 0 when no response arrived.
func fetchText(ctx context.Context, client *http.Client, rawURL string) (text string, status int, err error) {
	if err := validateURL(rawURL); err != nil {
		return "", 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", 0, ferrors.NetworkError("build request").WithCause(err).WithContext("url", rawURL).Build()
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, ferrors.NetworkError("request failed").WithCause(err).WithContext("url", rawURL).Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", resp.StatusCode, ferrors.NetworkError(fmt.Sprintf("HTTP %d", resp.StatusCode)).
			WithContext("url", rawURL).WithContext("status", resp.StatusCode).Build()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxScriptBytes+1))
	if err != nil {
		return "", resp.StatusCode, ferrors.NetworkError("read response").WithCause(err).WithContext("url", rawURL).Build()
	}
	if len(data) > MaxScriptBytes {
		return "", resp.StatusCode, ferrors.NetworkError("response too large").WithContext("url", rawURL).Build()
	}
	if !utf8.Valid(data) {
		return "", resp.StatusCode, ferrors.NetworkError("response body is not UTF-8 text").WithContext("url", rawURL).Build()
	}
	return string(data), resp.StatusCode, nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ferrors.NetworkError("invalid URL").WithCause(err).WithContext("url", raw).Build()
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ferrors.NetworkError("unsupported URL scheme: " + parsed.Scheme).WithContext("url", raw).Build()
	}
	return nil
}
