package memory

import (
	"context"
	"sort"
	"sync"

	"dogs-api/internal/domain/dogs"
)

type dogRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]dogs.Dog
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		nextID: 1,
		byID:   make(map[int64]dogs.Dog),
	}
}

func (r *dogRepo) FindAll(ctx context.Context) ([]dogs.Dog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}

	// Orden por id, igual que los stores SQL
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *dogRepo) FindByID(ctx context.Context, id int64) (dogs.Dog, error) {
	if err := ctx.Err(); err != nil {
		return dogs.Dog{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogRepo) Create(ctx context.Context, in dogs.Fields) (dogs.Dog, error) {
	if err := ctx.Err(); err != nil {
		return dogs.Dog{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d := dogs.Dog{
		ID:     r.nextID,
		Name:   in.Name,
		Weight: in.Weight,
	}
	r.nextID++
	r.byID[d.ID] = d
	return d, nil
}

func (r *dogRepo) Update(ctx context.Context, id int64, in dogs.Fields) (dogs.Dog, error) {
	if err := ctx.Err(); err != nil {
		return dogs.Dog{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	d.Name = in.Name
	d.Weight = in.Weight
	r.byID[id] = d
	return d, nil
}

func (r *dogRepo) Delete(ctx context.Context, id int64) (dogs.Dog, error) {
	if err := ctx.Err(); err != nil {
		return dogs.Dog{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	delete(r.byID, id)
	return d, nil
}
