package dogs

import "context"

// Repository es el Record Store.
// FindByID, Update y Delete devuelven ErrNotFound cuando el id no existe;
// cualquier otro error se considera falla del store.
type Repository interface {
	FindAll(ctx context.Context) ([]Dog, error)
	FindByID(ctx context.Context, id int64) (Dog, error)
	Create(ctx context.Context, in Fields) (Dog, error)
	Update(ctx context.Context, id int64, in Fields) (Dog, error)
	Delete(ctx context.Context, id int64) (Dog, error)
}
