package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/model"
	pkgerrors "github.com/shafqatdeveloper/campus-navigator/pkg/errors"
)

// TimetableRepository 时间表数据访问接口
// 没有 Update：时间表创建后不可编辑，只能删除重建
type TimetableRepository interface {
	Create(ctx context.Context, tt *model.Timetable) error
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	List(ctx context.Context) ([]model.Timetable, error)
	Delete(ctx context.Context, id string) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

// Create 插入时间表；(year, session, section) 唯一索引冲突时返回 ErrDuplicateKey
func (r *timetableRepo) Create(ctx context.Context, tt *model.Timetable) error {
	err := r.db.WithContext(ctx).Create(tt).Error
	if err != nil && isUniqueViolation(err) {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	var tt model.Timetable
	err := r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		First(&tt).Error
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *timetableRepo) List(ctx context.Context) ([]model.Timetable, error) {
	var tts []model.Timetable
	err := r.db.WithContext(ctx).
		Order("year DESC, session ASC, section ASC").
		Find(&tts).Error
	return tts, err
}

func (r *timetableRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		Delete(&model.Timetable{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// isUniqueViolation 检测 PostgreSQL 唯一约束冲突（SQLSTATE 23505）
func isUniqueViolation(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}
