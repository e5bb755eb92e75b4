package dto

// ── 教师名录 DTO ──

// CreateTeacherRequest 新增教师请求
type CreateTeacherRequest struct {
	Name          string `json:"name"          binding:"required,min=2,max=100"`
	Qualification string `json:"qualification" binding:"max=100"`
	Department    string `json:"department"    binding:"max=100"`
	Expertise     string `json:"expertise"     binding:"max=255"`
	Office        string `json:"office"        binding:"max=100"`
	Email         string `json:"email"         binding:"omitempty,email"`
	Phone         string `json:"phone"         binding:"max=30"`
	Bio           string `json:"bio"`
}

// TeacherSearchRequest 教师搜索参数
type TeacherSearchRequest struct {
	Query string `form:"q"`
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
	Department    string `json:"department"`
	Expertise     string `json:"expertise"`
	Office        string `json:"office"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Bio           string `json:"bio"`
}
