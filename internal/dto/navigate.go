package dto

// ── 校园导航 DTO ──

// NavigateRequest 路径规划请求
type NavigateRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to"   binding:"required"`
}

// NavigateResponse 路径规划结果
type NavigateResponse struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Distance     float64  `json:"distance"` // 米
	Path         []string `json:"path"`
	Instructions []string `json:"instructions"`
}

// LocationListResponse 可导航地点列表
type LocationListResponse struct {
	Locations []string `json:"locations"`
}
