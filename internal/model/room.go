package model

// Room 教室名录条目 — 对应 rooms
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Name     string `gorm:"type:varchar(100);not null;index"               json:"name"`
	Block    string `gorm:"type:varchar(20);index"                         json:"block"`
	Floor    string `gorm:"type:varchar(30)"                               json:"floor"`
	RoomType string `gorm:"type:varchar(50)"                               json:"room_type"`
	Capacity int    `gorm:"not null;default:0"                             json:"capacity"`
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
