package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"dogs-api/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) FindAll(ctx context.Context) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, weight FROM dogs ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		var d dogs.Dog
		if err := rows.Scan(&d.ID, &d.Name, &d.Weight); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DogsRepo) FindByID(ctx context.Context, id int64) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, weight FROM dogs WHERE id = ?`, id)
	return scanDog(row)
}

func (r *DogsRepo) Create(ctx context.Context, in dogs.Fields) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO dogs (name, weight) VALUES (?, ?) RETURNING id, name, weight`,
		in.Name, in.Weight,
	)
	return scanDog(row)
}

func (r *DogsRepo) Update(ctx context.Context, id int64, in dogs.Fields) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE dogs SET name = ?, weight = ? WHERE id = ? RETURNING id, name, weight`,
		in.Name, in.Weight, id,
	)
	return scanDog(row)
}

func (r *DogsRepo) Delete(ctx context.Context, id int64) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		`DELETE FROM dogs WHERE id = ? RETURNING id, name, weight`,
		id,
	)
	return scanDog(row)
}

func scanDog(row *sql.Row) (dogs.Dog, error) {
	var d dogs.Dog
	if err := row.Scan(&d.ID, &d.Name, &d.Weight); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return d, nil
}
