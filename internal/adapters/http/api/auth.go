package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/okian/ovation/internal/domain/model"
)

type actorContextKey struct{}

// actorClaims is the token payload the identity collaborator issues.
// Subject carries the actor id; Role the role claim.
type actorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// ActorExtractor resolves the acting identity for a request. With a secret
// configured it verifies HS256 bearer tokens; in disabled mode it trusts the
// X-Actor-Id and X-Actor-Role headers (local runs and tests only). The
// extractor never rejects an anonymous request; role enforcement is the
// engine's job.
type ActorExtractor struct {
	secret   []byte
	disabled bool
}

// NewActorExtractor creates an extractor verifying tokens with secret.
func NewActorExtractor(secret string) *ActorExtractor {
	return &ActorExtractor{secret: []byte(secret)}
}

// NewHeaderActorExtractor creates an extractor in header-trusting mode.
func NewHeaderActorExtractor() *ActorExtractor {
	return &ActorExtractor{disabled: true}
}

// Middleware attaches the resolved actor to the request context. A present
// but malformed credential is rejected with 401; absence is allowed through
// as an anonymous actor.
func (e *ActorExtractor) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := e.extract(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (e *ActorExtractor) extract(r *http.Request) (model.Actor, error) {
	if e.disabled {
		return model.Actor{
			ID:   strings.TrimSpace(r.Header.Get("X-Actor-Id")),
			Role: model.Role(strings.TrimSpace(r.Header.Get("X-Actor-Role"))),
		}, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return model.Actor{}, nil
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return model.Actor{}, fmt.Errorf("%w: authorization header is not a bearer token", ErrUnauthorized)
	}

	claims := &actorClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return e.secret, nil
	})
	if err != nil {
		return model.Actor{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return model.Actor{ID: claims.Subject, Role: model.Role(claims.Role)}, nil
}

// actorFrom returns the actor attached by the middleware, if any.
func actorFrom(ctx context.Context) model.Actor {
	if a, ok := ctx.Value(actorContextKey{}).(model.Actor); ok {
		return a
	}
	return model.Actor{}
}
