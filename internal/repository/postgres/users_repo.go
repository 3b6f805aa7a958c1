// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/wcraske/simpleCalendar/internal/models"
	repo "github.com/wcraske/simpleCalendar/internal/repository"
)

type usersRepo struct{ q querier }

const userColumns = `id::text, username, password_hash, role`

func (r *usersRepo) Create(ctx context.Context, username, hash, role string) (models.User, error) {
	var u models.User
	err := r.q.QueryRow(ctx,
		`INSERT INTO users(id, username, password_hash, role) VALUES($1,$2,$3,$4)
		 RETURNING `+userColumns,
		uuid.NewString(), username, hash, role,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	return u, translate(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	return u, translate(err)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	return u, translate(err)
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
