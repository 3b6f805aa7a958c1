package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wcraske/simpleCalendar/internal/models"
	repo "github.com/wcraske/simpleCalendar/internal/repository"
)

type eventsRepo struct{ q querier }

const eventColumns = `id::text, name, description, start_date, end_date, owner_user_id::text`

func scanEvent(row pgx.Row) (models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate, &e.OwnerID)
	return e, err
}

func collectEvents(rows pgx.Rows) ([]models.Event, error) {
	defer rows.Close()
	out := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventsRepo) Create(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row := r.q.QueryRow(ctx,
		`INSERT INTO events(id, name, description, start_date, end_date, owner_user_id)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+eventColumns,
		e.ID, e.Name, e.Description, e.StartDate.UTC(), e.EndDate.UTC(), e.OwnerID,
	)
	created, err := scanEvent(row)
	return created, translate(err)
}

func (r *eventsRepo) GetByID(ctx context.Context, id string) (models.Event, error) {
	e, err := scanEvent(r.q.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id=$1`, id))
	return e, translate(err)
}

func (r *eventsRepo) List(ctx context.Context, f repo.EventFilter) ([]models.Event, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.OwnerID != "" {
		conds = append(conds, "owner_user_id = "+arg(f.OwnerID))
	}
	if f.Search != "" {
		// strpos is case-sensitive and needs no LIKE escaping
		p := arg(f.Search)
		conds = append(conds, "(strpos(name, "+p+") > 0 OR strpos(description, "+p+") > 0)")
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + eventColumns + ` FROM events`)
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY start_date, id LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Skip))

	rows, err := r.q.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, translate(err)
	}
	return collectEvents(rows)
}

func (r *eventsRepo) StartingBetween(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+eventColumns+`
		   FROM events
		  WHERE owner_user_id=$1 AND start_date >= $2 AND start_date <= $3
		  ORDER BY start_date, id`,
		ownerID, from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, translate(err)
	}
	return collectEvents(rows)
}

func (r *eventsRepo) Update(ctx context.Context, e models.Event) (models.Event, error) {
	updated, err := scanEvent(r.q.QueryRow(ctx,
		`UPDATE events
		    SET name=$2, description=$3, start_date=$4, end_date=$5
		  WHERE id=$1
		  RETURNING `+eventColumns,
		e.ID, e.Name, e.Description, e.StartDate.UTC(), e.EndDate.UTC(),
	))
	return updated, translate(err)
}

func (r *eventsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
