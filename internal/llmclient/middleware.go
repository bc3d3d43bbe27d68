package llmclient

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Middleware decorates a Client to inject cross-cutting concerns.
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// RateLimit throttles calls with a token bucket. rps <= 0 disables it.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Client) Client {
		var lim *rate.Limiter
		if rps > 0 {
			if burst < 1 {
				burst = 1
			}
			lim = rate.NewLimiter(rate.Limit(rps), burst)
		}
		return &rateLimited{next: next, lim: lim}
	}
}

type rateLimited struct {
	next Client
	lim  *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }

func (c *rateLimited) GenerateVision(ctx context.Context, req VisionRequest) (string, error) {
	if c.lim != nil {
		if err := c.lim.Wait(ctx); err != nil {
			return "", &TransportError{Err: err}
		}
	}
	return c.next.GenerateVision(ctx, req)
}

// WithLogging records each call's size, duration and outcome.
func WithLogging(log *zap.Logger) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next Client) Client {
		return &logged{next: next, log: log}
	}
}

type logged struct {
	next Client
	log  *zap.Logger
}

func (c *logged) Name() string { return c.next.Name() }
func (c *logged) Close() error { return c.next.Close() }

func (c *logged) GenerateVision(ctx context.Context, req VisionRequest) (string, error) {
	start := time.Now()
	out, err := c.next.GenerateVision(ctx, req)
	fields := []zap.Field{
		zap.String("client", c.next.Name()),
		zap.Int("prompt_bytes", len(req.Prompt)),
		zap.Int("attachments", len(req.Attachments)),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		c.log.Warn("llm call failed", append(fields, zap.Error(err))...)
		return out, err
	}
	c.log.Debug("llm call ok", append(fields, zap.Int("reply_bytes", len(out)))...)
	return out, nil
}
