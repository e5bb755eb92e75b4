package dto

// ── 教室名录 DTO ──

// CreateRoomRequest 新增教室请求
type CreateRoomRequest struct {
	Name     string `json:"name"      binding:"required,min=1,max=100"`
	Block    string `json:"block"     binding:"max=20"`
	Floor    string `json:"floor"     binding:"max=30"`
	RoomType string `json:"room_type" binding:"max=50"`
	Capacity int    `json:"capacity"  binding:"omitempty,min=0"`
}

// RoomSearchRequest 教室搜索参数
type RoomSearchRequest struct {
	Query string `form:"q"`
}

// RoomResponse 教室信息响应
type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Block    string `json:"block"`
	Floor    string `json:"floor"`
	RoomType string `json:"room_type"`
	Capacity int    `json:"capacity"`
}
