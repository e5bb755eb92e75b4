package model

// Admin 管理员账号 — 对应 admins
type Admin struct {
	AdminID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (Admin) TableName() string { return "admins" }
