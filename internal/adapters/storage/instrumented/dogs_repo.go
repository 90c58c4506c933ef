// Package instrumented envuelve un dogs.Repository y reporta latencia y
// resultado de cada operación.
package instrumented

import (
	"context"
	"errors"
	"time"

	"dogs-api/internal/domain/dogs"
	"dogs-api/internal/platform/metrics"
)

type Recorder interface {
	ObserveStoreOp(op, outcome string, d time.Duration)
}

type DogsRepo struct {
	next dogs.Repository
	rec  Recorder
	now  func() time.Time
}

func NewDogsRepo(next dogs.Repository, rec Recorder) *DogsRepo {
	return &DogsRepo{next: next, rec: rec, now: time.Now}
}

func (r *DogsRepo) FindAll(ctx context.Context) ([]dogs.Dog, error) {
	start := r.now()
	out, err := r.next.FindAll(ctx)
	r.observe("find_all", start, err)
	return out, err
}

func (r *DogsRepo) FindByID(ctx context.Context, id int64) (dogs.Dog, error) {
	start := r.now()
	d, err := r.next.FindByID(ctx, id)
	r.observe("find_by_id", start, err)
	return d, err
}

func (r *DogsRepo) Create(ctx context.Context, in dogs.Fields) (dogs.Dog, error) {
	start := r.now()
	d, err := r.next.Create(ctx, in)
	r.observe("create", start, err)
	return d, err
}

func (r *DogsRepo) Update(ctx context.Context, id int64, in dogs.Fields) (dogs.Dog, error) {
	start := r.now()
	d, err := r.next.Update(ctx, id, in)
	r.observe("update", start, err)
	return d, err
}

func (r *DogsRepo) Delete(ctx context.Context, id int64) (dogs.Dog, error) {
	start := r.now()
	d, err := r.next.Delete(ctx, id)
	r.observe("delete", start, err)
	return d, err
}

func (r *DogsRepo) observe(op string, start time.Time, err error) {
	if r.rec == nil {
		return
	}
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, dogs.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	r.rec.ObserveStoreOp(op, outcome, r.now().Sub(start))
}
