package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/jwt"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 管理员登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "邮箱或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 管理员登出，当前 Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// RefreshToken 刷新 Token 对
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenInvalid) {
			response.Unauthorized(c, 11002, "RefreshToken 无效或已过期")
			return
		}
		if errors.Is(err, service.ErrAdminNotFound) {
			response.Unauthorized(c, 11002, "RefreshToken 无效或已过期")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Me 当前登录管理员信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.NotFound(c, 11003, "管理员不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
