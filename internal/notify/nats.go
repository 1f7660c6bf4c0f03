// Package notify publishes build events so other services can react to a
// finished build.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/observability"
)

const publishTimeout = 5 * time.Second

// Publisher delivers build events.
type Publisher interface {
	PublishBuild(ctx context.Context, event BuildEvent) error
	Close() error
}

// conn is the subset of *nats.Conn used for publishing.
type conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSPublisher publishes build events on a NATS subject.
type NATSPublisher struct {
	conn    conn
	subject string
	now     func() time.Time
}

// Connect dials the NATS server at url.
func Connect(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		return nil, ferrors.ConfigError("notify subject is required").Build()
	}
	nc, err := nats.Connect(url, nats.Name("portfolio"), nats.Timeout(publishTimeout))
	if err != nil {
		return nil, ferrors.NetworkError("failed to connect to NATS").
			WithCause(err).WithContext("url", url).Build()
	}
	return newPublisher(nc, subject), nil
}

func newPublisher(c conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: c, subject: subject, now: time.Now}
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string { return p.subject }

// PublishBuild marshals event as JSON, publishes it and waits for the server
// to acknowledge the flush.
func (p *NATSPublisher) PublishBuild(ctx context.Context, event BuildEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return ferrors.InternalError("failed to marshal build event").WithCause(err).Build()
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return ferrors.NetworkError("failed to publish build event").
			WithCause(err).WithContext("subject", p.subject).Build()
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return ferrors.NetworkError("failed to flush build event").
			WithCause(err).WithContext("subject", p.subject).Build()
	}

	observability.DebugContext(ctx, "Published build event",
		logfields.BuildID(event.BuildID),
		logfields.Count(len(event.Pages)))
	return nil
}

// Close closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// Nop discards events.
type Nop struct{}

func (Nop) PublishBuild(context.Context, BuildEvent) error { return nil }
func (Nop) Close() error                                   { return nil }
