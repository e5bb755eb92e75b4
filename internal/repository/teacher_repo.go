package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/model"
)

// TeacherRepository 教师名录数据访问接口
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	List(ctx context.Context) ([]model.Teacher, error)
	Delete(ctx context.Context, id string) error
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).Order("name ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("teacher_id = ?", id).
		Delete(&model.Teacher{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
