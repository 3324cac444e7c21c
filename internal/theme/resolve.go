package theme

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Environment tells Resolve whether a browser is on the other end and, if
// so, where its preference can be read.
type Environment interface {
	Browser() bool
	Lookup(ctx context.Context, key string) (string, bool, error)
}

// RequestEnvironment is browser-like whenever a request is present. The
// request's cookie wins over the shared store.
type RequestEnvironment struct {
	Request    *http.Request
	Store      Store
	CookieName string
}

func (e RequestEnvironment) Browser() bool {
	return e.Request != nil
}

func (e RequestEnvironment) Lookup(ctx context.Context, key string) (string, bool, error) {
	if e.Request != nil {
		name := e.CookieName
		if name == "" {
			name = key
		}
		if cookie, err := e.Request.Cookie(name); err == nil {
			return cookie.Value, true, nil
		}
	}
	if e.Store == nil {
		return "", false, nil
	}
	return e.Store.Get(ctx, key)
}

// ServerEnvironment is used when rendering without a client, such as the
// static export. It never reports a stored value.
type ServerEnvironment struct{}

func (ServerEnvironment) Browser() bool { return false }

func (ServerEnvironment) Lookup(context.Context, string) (string, bool, error) {
	return "", false, nil
}

// Resolver picks a component's initial mode.
type Resolver struct {
	Fallback Mode
}

// Resolve returns the explicit prop when given. Otherwise a browser-like env
// is consulted, and anything missing or unreadable yields the fallback.
func (r Resolver) Resolve(ctx context.Context, explicit *bool, env Environment) Mode {
	if explicit != nil {
		return FromBool(*explicit)
	}
	if env == nil || !env.Browser() {
		return r.Fallback
	}
	value, ok, err := env.Lookup(ctx, Key)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to read theme preference")
		return r.Fallback
	}
	if !ok {
		return r.Fallback
	}
	return ParseMode(value)
}

// Resolve uses DefaultMode as the fallback.
func Resolve(ctx context.Context, explicit *bool, env Environment) Mode {
	return Resolver{Fallback: DefaultMode}.Resolve(ctx, explicit, env)
}
