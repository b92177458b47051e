package storage

import "gorm.io/gorm"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) SaveNotification(n *Notification) error {
	return r.db.Create(n).Error
}

func (r *Repository) GetRecentNotifications(limit int) ([]Notification, error) {
	var notifications []Notification
	err := r.db.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *Repository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&Notification{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *Repository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
