package sqlite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wcraske/simpleCalendar/internal/models"
	repo "github.com/wcraske/simpleCalendar/internal/repository"
)

type usersRepo struct{ db *gorm.DB }

func (r userRow) toModel() models.User {
	return models.User{ID: r.ID, Username: r.Username, PasswordHash: r.PasswordHash, Role: r.Role}
}

func (r *usersRepo) Create(ctx context.Context, username, hash, role string) (models.User, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userRow{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return models.User{}, err
	}
	if n > 0 {
		return models.User{}, repo.ErrConflict
	}
	row := userRow{ID: uuid.NewString(), Username: username, PasswordHash: hash, Role: role}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.User{}, translate(err)
	}
	return row.toModel(), nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.User{}, translate(err)
	}
	return row.toModel(), nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return models.User{}, translate(err)
	}
	return row.toModel(), nil
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("username").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]models.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRow{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
