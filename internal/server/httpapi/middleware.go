package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reviewflow/internal/domain"
	"reviewflow/pkg/ctxdata"
	"reviewflow/pkg/logging"
)

type actorKey struct{}

var actorKeyInstance = actorKey{}

func contextWithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKeyInstance, actor)
}

func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKeyInstance).(domain.Actor)
	return actor, ok
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func NewLoggingMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			traceID, err := uuid.NewV7()
			if err != nil {
				traceID = uuid.New()
			}

			ctx := ctxdata.WithTraceID(r.Context(), traceID.String())
			ctx = logging.ContextWithLogger(ctx, logger)
			r = r.WithContext(ctx)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Trace-Id", traceID.String())

			next.ServeHTTP(sw, r)

			logger.Info(ctx, "request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// NewAuthMiddleware resolves the identity the gateway established (the
// X-User-Id header) to an actor with a provisioned role. The actor is
// handed to the workflow explicitly; nothing downstream reads session
// state.
func NewAuthMiddleware(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("X-User-Id")
			if header == "" {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "no identity header", zap.String("path", r.URL.Path))
				}
				writeErrorJSON(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				writeErrorJSON(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			actor, err := resolver.Resolve(ctx, userID)
			if err != nil {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "failed to resolve actor",
						zap.String("path", r.URL.Path),
						zap.Error(err),
					)
				}
				writeErrorJSON(w, mapErr(err), "unauthenticated")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithActor(ctx, actor)))
		})
	}
}
