package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wcraske/simpleCalendar/internal/models"
	repo "github.com/wcraske/simpleCalendar/internal/repository"
)

type eventsRepo struct{ db *gorm.DB }

func (r eventRow) toModel() models.Event {
	return models.Event{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate.UTC(),
		EndDate:     r.EndDate.UTC(),
		OwnerID:     r.OwnerID,
	}
}

func toModels(rows []eventRow) []models.Event {
	out := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}

func (r *eventsRepo) Create(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row := eventRow{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		StartDate:   e.StartDate.UTC(),
		EndDate:     e.EndDate.UTC(),
		OwnerID:     e.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Event{}, translate(err)
	}
	return row.toModel(), nil
}

func (r *eventsRepo) GetByID(ctx context.Context, id string) (models.Event, error) {
	var row eventRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Event{}, translate(err)
	}
	return row.toModel(), nil
}

func (r *eventsRepo) List(ctx context.Context, f repo.EventFilter) ([]models.Event, error) {
	q := r.db.WithContext(ctx).Model(&eventRow{})
	if f.OwnerID != "" {
		q = q.Where("owner_user_id = ?", f.OwnerID)
	}
	if f.Search != "" {
		// instr is case-sensitive, unlike LIKE
		q = q.Where("(instr(name, ?) > 0 OR instr(description, ?) > 0)", f.Search, f.Search)
	}
	var rows []eventRow
	err := q.Order("start_date").Order("id").Offset(f.Skip).Limit(f.Limit).Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return toModels(rows), nil
}

func (r *eventsRepo) StartingBetween(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	var rows []eventRow
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ? AND start_date >= ? AND start_date <= ?", ownerID, from.UTC(), to.UTC()).
		Order("start_date").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return toModels(rows), nil
}

func (r *eventsRepo) Update(ctx context.Context, e models.Event) (models.Event, error) {
	res := r.db.WithContext(ctx).Model(&eventRow{}).Where("id = ?", e.ID).Updates(map[string]any{
		"name":        e.Name,
		"description": e.Description,
		"start_date":  e.StartDate.UTC(),
		"end_date":    e.EndDate.UTC(),
	})
	if res.Error != nil {
		return models.Event{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Event{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, e.ID)
}

func (r *eventsRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&eventRow{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
