package model

// Teacher 教师名录条目 — 对应 teachers
type Teacher struct {
	TeacherID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Name          string `gorm:"type:varchar(100);not null;index"               json:"name"`
	Qualification string `gorm:"type:varchar(100)"                              json:"qualification"`
	Department    string `gorm:"type:varchar(100)"                              json:"department"`
	Expertise     string `gorm:"type:varchar(255)"                              json:"expertise"`
	Office        string `gorm:"type:varchar(100)"                              json:"office"`
	Email         string `gorm:"type:varchar(255)"                              json:"email"`
	Phone         string `gorm:"type:varchar(30)"                               json:"phone"`
	Bio           string `gorm:"type:text"                                      json:"bio"`
	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
