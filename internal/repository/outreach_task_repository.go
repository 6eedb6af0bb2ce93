package repository

import (
	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutreachTaskRepository struct {
	db *gorm.DB
}

func NewOutreachTaskRepository(db *gorm.DB) *OutreachTaskRepository {
	return &OutreachTaskRepository{db}
}

func (r *OutreachTaskRepository) CreateTask(task *model.OutreachTask) error {
	return r.db.Create(task).Error
}

func (r *OutreachTaskRepository) UpdateTask(task *model.OutreachTask) error {
	return r.db.Save(task).Error
}

// FindTaskByID reports gorm.ErrRecordNotFound for ids that are not UUIDs
// instead of letting Postgres reject the cast.
func (r *OutreachTaskRepository) FindTaskByID(id string) (*model.OutreachTask, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var task model.OutreachTask
	if err := r.db.First(&task, "id = ?", taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
