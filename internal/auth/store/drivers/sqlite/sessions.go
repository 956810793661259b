package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/store/drivers/sqlite/gen"
)

type sessionsRepo struct {
	q *gen.Queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	err := r.q.CreateSession(ctx, gen.CreateSessionParams{
		ID:         s.ID,
		UserID:     s.UserID,
		Persistent: s.Persistent,
		Amr:        strings.Join(s.AMR, " "),
		ExpiresAt:  utc(s.ExpiresAt),
	})
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	row, err := r.q.GetSession(ctx, id)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string) error {
	return affectedOne(r.q.RevokeSession(ctx, id))
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredSessions(ctx, utc(now))
}
