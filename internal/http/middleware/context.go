package middlewarex

import (
	"context"

	"schooldb/internal/services/listing"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxSessionID ctxKey = "session_id"
	ctxSession   ctxKey = "session"
)

func WithSession(ctx context.Context, id uuid.UUID, svc *listing.Service) context.Context {
	ctx = context.WithValue(ctx, ctxSessionID, id)
	return context.WithValue(ctx, ctxSession, svc)
}

func Session(ctx context.Context) (*listing.Service, bool) {
	v, ok := ctx.Value(ctxSession).(*listing.Service)
	return v, ok
}

func SessionID(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ctxSessionID).(uuid.UUID)
	return v, ok
}
