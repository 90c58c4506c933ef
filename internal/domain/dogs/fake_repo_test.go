package dogs

import (
	"context"
	"sort"
)

// fakeRepo cuenta llamadas por operación; si err != nil todas fallan.
type fakeRepo struct {
	calls map[string]int
	err   error
	byID  map[int64]Dog
	next  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{calls: map[string]int{}, byID: map[int64]Dog{}, next: 1}
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Dog, error) {
	f.calls["find_all"]++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.byID) == 0 {
		// simula un store que devuelve nil para "sin filas"
		return nil, nil
	}
	out := make([]Dog, 0, len(f.byID))
	for _, d := range f.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (Dog, error) {
	f.calls["find_by_id"]++
	if f.err != nil {
		return Dog{}, f.err
	}
	d, ok := f.byID[id]
	if !ok {
		return Dog{}, ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) Create(ctx context.Context, in Fields) (Dog, error) {
	f.calls["create"]++
	if f.err != nil {
		return Dog{}, f.err
	}
	d := Dog{ID: f.next, Name: in.Name, Weight: in.Weight}
	f.next++
	f.byID[d.ID] = d
	return d, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, in Fields) (Dog, error) {
	f.calls["update"]++
	if f.err != nil {
		return Dog{}, f.err
	}
	if _, ok := f.byID[id]; !ok {
		return Dog{}, ErrNotFound
	}
	d := Dog{ID: id, Name: in.Name, Weight: in.Weight}
	f.byID[id] = d
	return d, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) (Dog, error) {
	f.calls["delete"]++
	if f.err != nil {
		return Dog{}, f.err
	}
	d, ok := f.byID[id]
	if !ok {
		return Dog{}, ErrNotFound
	}
	delete(f.byID, id)
	return d, nil
}
