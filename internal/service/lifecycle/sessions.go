package lifecycle

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type openedSession struct {
	sess Session
	err  error
}

// sessionCache opens at most one provider session per owner during a sweep.
// A failed credential load is remembered so it is not retried for every form.
type sessionCache struct {
	r     *Reconciler
	byOwn map[uuid.UUID]openedSession
}

func newSessionCache(r *Reconciler) *sessionCache {
	return &sessionCache{r: r, byOwn: make(map[uuid.UUID]openedSession)}
}

func (c *sessionCache) get(ctx context.Context, ownerID uuid.UUID) (Session, error) {
	if o, ok := c.byOwn[ownerID]; ok {
		return o.sess, o.err
	}

	var o openedSession
	cred, err := c.r.creds.Load(ctx, ownerID)
	if err != nil {
		o.err = err
	} else {
		o.sess = c.r.open(cred)
	}
	c.byOwn[ownerID] = o
	return o.sess, o.err
}

// flush stores every credential the sweep's sessions refreshed.
func (c *sessionCache) flush(ctx context.Context) {
	for ownerID, o := range c.byOwn {
		if o.sess == nil {
			continue
		}
		cred, rotated := o.sess.Rotated()
		if !rotated {
			continue
		}
		if err := c.r.creds.Save(context.WithoutCancel(ctx), cred); err != nil {
			c.r.log.ErrorContext(ctx, "store refreshed credential",
				slog.String("user_id", ownerID.String()),
				slog.String("error", err.Error()))
		}
	}
}
