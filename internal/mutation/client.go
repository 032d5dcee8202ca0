// Package mutation performs resource writes and keeps the query cache and
// the user informed of the outcome.
//
// Every call sends exactly one request. On success the resource's
// invalidation set is marked stale before the success notification goes
// out, so anything redrawn in response to the notification refetches. On
// failure a destructive notification carries the server's message (or a
// fixed fallback) and the cache is left alone. Calls are independent: the
// client does no ordering, deduplication or retrying.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/theirongolddev/bizdash/internal/api"
	"github.com/theirongolddev/bizdash/internal/notify"
	"github.com/theirongolddev/bizdash/internal/query"
	"github.com/theirongolddev/bizdash/internal/resource"
)

// Doer sends one JSON request.
type Doer interface {
	Do(ctx context.Context, method, path string, in, out any) error
}

// State is a step in a single call's lifecycle.
type State string

const (
	Idle        State = "idle"
	InFlight    State = "in-flight"
	Succeeded   State = "success"
	Invalidated State = "cache-invalidated"
	Failed      State = "failure"
	Notified    State = "notified"
)

// Request is one write, built per call and discarded after the response.
type Request struct {
	ResourcePath string
	Method       resource.Method
	Payload      resource.Payload
	ID           int64
}

// Error is a failed write. Message is what the user was shown.
type Error struct {
	Request Request
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Request.Method, e.Request.ResourcePath, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Deps are the collaborators a Client needs. Notifier and Logger are
// optional; OnState, when set, observes every lifecycle transition.
type Deps struct {
	API      Doer
	Cache    query.Cache
	Notifier notify.Notifier
	Logger   *zap.Logger
	OnState  func(Request, State)
}

// Client writes one resource. In is the resource's typed payload and Out the
// record the server echoes back.
type Client[In resource.Payload, Out any] struct {
	res  resource.Descriptor
	deps Deps
}

// New returns a Client for res.
func New[In resource.Payload, Out any](res resource.Descriptor, deps Deps) *Client[In, Out] {
	if deps.Notifier == nil {
		deps.Notifier = notify.Discard
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Client[In, Out]{res: res, deps: deps}
}

// Resource returns the descriptor the client writes.
func (c *Client[In, Out]) Resource() resource.Descriptor {
	return c.res
}

// Create posts in to the collection.
func (c *Client[In, Out]) Create(ctx context.Context, in In) (Out, error) {
	var out Out
	req := Request{ResourcePath: c.res.CollectionPath(), Method: resource.Create, Payload: in}
	err := c.execute(ctx, req, &out)
	return out, err
}

// Update puts in to the record with id.
func (c *Client[In, Out]) Update(ctx context.Context, id int64, in In) (Out, error) {
	var out Out
	req := Request{ResourcePath: c.res.ItemPath(id), Method: resource.Update, Payload: in, ID: id}
	err := c.execute(ctx, req, &out)
	return out, err
}

// Delete removes the record with id. The response body is not required.
func (c *Client[In, Out]) Delete(ctx context.Context, id int64) error {
	req := Request{ResourcePath: c.res.ItemPath(id), Method: resource.Delete, ID: id}
	return c.execute(ctx, req, nil)
}

func httpMethod(m resource.Method) string {
	switch m {
	case resource.Create:
		return http.MethodPost
	case resource.Delete:
		return http.MethodDelete
	default:
		return http.MethodPut
	}
}

func (c *Client[In, Out]) execute(ctx context.Context, req Request, out any) error {
	c.transition(req, Idle)

	if err := resource.Validate(req.Method, req.Payload); err != nil {
		msg := err.Error()
		var ve *resource.ValidationError
		if errors.As(err, &ve) {
			msg = ve.Message
		}
		return c.fail(req, msg, err)
	}

	c.transition(req, InFlight)

	var body any
	if req.Payload != nil {
		body = req.Payload
	}
	if err := c.deps.API.Do(ctx, httpMethod(req.Method), req.ResourcePath, body, out); err != nil {
		msg, ok := api.ServerMessage(err)
		if !ok {
			msg = c.res.Messages.Failure(req.Method)
		}
		return c.fail(req, msg, err)
	}

	c.transition(req, Succeeded)
	c.invalidate(req)
	c.transition(req, Invalidated)

	m := c.res.Messages.Success(req.Method)
	c.deps.Notifier.Notify(notify.Notification{
		Title:       m.Title,
		Description: m.Description,
		Variant:     notify.Default,
	})
	c.transition(req, Notified)

	c.deps.Logger.Debug("mutation succeeded",
		zap.String("resource", c.res.Name),
		zap.String("method", string(req.Method)),
		zap.Int64("id", req.ID),
	)
	return nil
}

// invalidate marks the resource's invalidation set stale. The write already
// happened, so cache errors are logged rather than returned.
func (c *Client[In, Out]) invalidate(req Request) {
	if c.deps.Cache == nil {
		return
	}
	for _, prefix := range c.res.Invalidates {
		if err := c.deps.Cache.Invalidate(prefix); err != nil {
			c.deps.Logger.Warn("cache invalidation failed",
				zap.String("resource", c.res.Name),
				zap.String("key", prefix),
				zap.String("method", string(req.Method)),
				zap.Error(err),
			)
		}
	}
}

func (c *Client[In, Out]) fail(req Request, msg string, cause error) error {
	c.transition(req, Failed)
	c.deps.Notifier.Notify(notify.Notification{
		Title:       "Error",
		Description: msg,
		Variant:     notify.Destructive,
	})
	c.transition(req, Notified)

	c.deps.Logger.Warn("mutation failed",
		zap.String("resource", c.res.Name),
		zap.String("method", string(req.Method)),
		zap.Int64("id", req.ID),
		zap.Error(cause),
	)
	return &Error{Request: req, Message: msg, Err: cause}
}

func (c *Client[In, Out]) transition(req Request, s State) {
	if c.deps.OnState != nil {
		c.deps.OnState(req, s)
	}
}
