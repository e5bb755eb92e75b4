package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/model"
)

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	GetByID(ctx context.Context, id string) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepo 创建 AdminRepository 实例
func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", id).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
