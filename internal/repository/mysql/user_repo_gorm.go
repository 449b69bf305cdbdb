package mysql

import (
	"context"
	"errors"
	"log"
	"time"

	"myskin-api/internal/domain"
	"myskin-api/internal/repository"

	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		log.Printf("user create error: %v", err)
		return err
	}
	return nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("user FindByEmail error: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND password = ?", email, password).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("user FindByCredentials error: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("user FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", time.Now()).Error
	if err != nil {
		log.Printf("user TouchLastLogin error: %v", err)
	}
	return err
}
