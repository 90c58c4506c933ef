package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"dogs-api/internal/domain/dogs"
	"dogs-api/internal/platform/logger"
	"dogs-api/internal/platform/metrics"
)

const (
	keyAll      = "dogs:all"
	keyIDPrefix = "dogs:id:"
	keyGen      = "dogs:gen"

	DefaultTTL = 30 * time.Second
)

type entry struct {
	Gen  int64           `json:"gen"`
	Data json.RawMessage `json:"data"`
}

type LookupRecorder interface {
	RecordCacheLookup(result string)
}

// DogsRepo cachea FindAll y FindByID; toda escritura exitosa invalida.
// Los errores de cache se loguean y nunca fallan el request.
//
// Cada entrada guarda la generación leída antes de ir al store. Las escrituras
// incrementan dogs:gen, así una lectura concurrente que llene el cache tarde
// deja una entrada vieja que nunca se sirve.
type DogsRepo struct {
	next  dogs.Repository
	store Store
	ttl   time.Duration
	log   logger.Logger
	rec   LookupRecorder
}

func NewDogsRepo(next dogs.Repository, store Store, ttl time.Duration, log logger.Logger, rec LookupRecorder) *DogsRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DogsRepo{next: next, store: store, ttl: ttl, log: log, rec: rec}
}

func (r *DogsRepo) FindAll(ctx context.Context) ([]dogs.Dog, error) {
	var cached []dogs.Dog
	gen, hit := r.lookup(ctx, keyAll, &cached)
	if hit {
		return cached, nil
	}

	out, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, keyAll, gen, out)
	return out, nil
}

func (r *DogsRepo) FindByID(ctx context.Context, id int64) (dogs.Dog, error) {
	key := idKey(id)

	var cached dogs.Dog
	gen, hit := r.lookup(ctx, key, &cached)
	if hit {
		return cached, nil
	}

	d, err := r.next.FindByID(ctx, id)
	if err != nil {
		return dogs.Dog{}, err
	}
	r.fill(ctx, key, gen, d)
	return d, nil
}

func (r *DogsRepo) Create(ctx context.Context, in dogs.Fields) (dogs.Dog, error) {
	d, err := r.next.Create(ctx, in)
	if err != nil {
		return dogs.Dog{}, err
	}
	r.invalidate(ctx, keyAll)
	return d, nil
}

func (r *DogsRepo) Update(ctx context.Context, id int64, in dogs.Fields) (dogs.Dog, error) {
	d, err := r.next.Update(ctx, id, in)
	if err != nil {
		return dogs.Dog{}, err
	}
	r.invalidate(ctx, keyAll, idKey(id))
	return d, nil
}

func (r *DogsRepo) Delete(ctx context.Context, id int64) (dogs.Dog, error) {
	d, err := r.next.Delete(ctx, id)
	if err != nil {
		return dogs.Dog{}, err
	}
	r.invalidate(ctx, keyAll, idKey(id))
	return d, nil
}

// lookup devuelve la generación actual y si hubo hit. gen < 0 significa que
// no se pudo leer la generación y no hay que llenar el cache.
func (r *DogsRepo) lookup(ctx context.Context, key string, dst any) (int64, bool) {
	gen, err := r.generation(ctx)
	if err != nil {
		r.record(metrics.CacheError)
		r.log.Warn("cache get failed", map[string]any{"key": keyGen, "error": err.Error()})
		return -1, false
	}

	b, err := r.store.Get(ctx, key)
	switch {
	case errors.Is(err, ErrMiss):
		r.record(metrics.CacheMiss)
		return gen, false
	case err != nil:
		r.record(metrics.CacheError)
		r.log.Warn("cache get failed", map[string]any{"key": key, "error": err.Error()})
		return -1, false
	}

	var e entry
	if err := json.Unmarshal(b, &e); err != nil {
		r.record(metrics.CacheError)
		r.log.Warn("cache entry corrupt", map[string]any{"key": key, "error": err.Error()})
		return gen, false
	}
	if e.Gen != gen {
		r.record(metrics.CacheMiss)
		return gen, false
	}
	if err := json.Unmarshal(e.Data, dst); err != nil {
		r.record(metrics.CacheError)
		r.log.Warn("cache entry corrupt", map[string]any{"key": key, "error": err.Error()})
		return gen, false
	}
	r.record(metrics.CacheHit)
	return gen, true
}

func (r *DogsRepo) generation(ctx context.Context) (int64, error) {
	b, err := r.store.Get(ctx, keyGen)
	if errors.Is(err, ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(b), 10, 64)
}

func (r *DogsRepo) fill(ctx context.Context, key string, gen int64, v any) {
	if gen < 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	b, err := json.Marshal(entry{Gen: gen, Data: data})
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, key, b, r.ttl); err != nil {
		r.log.Warn("cache set failed", map[string]any{"key": key, "error": err.Error()})
	}
}

// invalidate sube la generación antes de borrar: si el Incr falla, el Del
// igual limpia lo que ya estaba.
func (r *DogsRepo) invalidate(ctx context.Context, keys ...string) {
	if _, err := r.store.Incr(ctx, keyGen); err != nil {
		r.log.Warn("cache generation bump failed", map[string]any{"error": err.Error()})
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		r.log.Warn("cache invalidate failed", map[string]any{"keys": keys, "error": err.Error()})
	}
}

func (r *DogsRepo) record(result string) {
	if r.rec != nil {
		r.rec.RecordCacheLookup(result)
	}
}

func idKey(id int64) string {
	return keyIDPrefix + strconv.FormatInt(id, 10)
}
