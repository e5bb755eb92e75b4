package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/shafqatdeveloper/campus-navigator/config"
	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
)

var (
	// ErrAssistantTimeout 助手后端在限定时间内未响应
	ErrAssistantTimeout = errors.New("问答助手响应超时，请稍后重试")
	// ErrAssistantUnreachable 无法连接助手后端
	ErrAssistantUnreachable = errors.New("问答助手暂不可用")
	// ErrAssistantFailed 助手后端返回错误状态
	ErrAssistantFailed = errors.New("问答助手处理失败")
)

// maxAudioAnswer 语音回答大小上限，防止上游异常响应占满内存
const maxAudioAnswer = 16 << 20

// AskService 校园问答代理
// 将问题（文字或语音文件）以 multipart 表单转发至助手后端，
// 按 response_format 透传文字回答或语音回答；
// 超时与连接失败是两类错误，前端提示不同，且不做重试
type AskService interface {
	Ask(ctx context.Context, query *dto.AskQuery) (*dto.AskResult, error)
}

type askService struct {
	cfg    *config.AssistantConfig
	client *http.Client
	logger *zap.Logger
}

// NewAskService 创建 AskService 实例
func NewAskService(cfg *config.AssistantConfig, logger *zap.Logger) AskService {
	return &askService{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (s *askService) Ask(ctx context.Context, query *dto.AskQuery) (*dto.AskResult, error) {
	body, contentType, err := buildAskForm(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/ask", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			s.logger.Warn("助手请求超时", zap.Duration("timeout", s.cfg.Timeout))
			return nil, ErrAssistantTimeout
		}
		s.logger.Error("助手连接失败", zap.Error(err))
		return nil, ErrAssistantUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("助手返回错误状态", zap.Int("status", resp.StatusCode))
		return nil, ErrAssistantFailed
	}

	// response_format=audio 时助手直接返回音频流
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "audio/") {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioAnswer))
		if err != nil {
			s.logger.Error("读取语音回答失败", zap.Error(err))
			return nil, ErrAssistantFailed
		}
		return &dto.AskResult{AudioData: data, ContentType: ct}, nil
	}

	var answer dto.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		s.logger.Error("助手响应解析失败", zap.Error(err))
		return nil, ErrAssistantFailed
	}
	return &dto.AskResult{Answer: &answer}, nil
}

// buildAskForm 构造 multipart 表单：text / audio / response_format
func buildAskForm(query *dto.AskQuery) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if query.Text != "" {
		if err := w.WriteField("text", query.Text); err != nil {
			return nil, "", err
		}
	}

	if query.ResponseFormat != "" {
		if err := w.WriteField("response_format", query.ResponseFormat); err != nil {
			return nil, "", err
		}
	}

	if query.Audio != nil {
		f, err := query.Audio.Open()
		if err != nil {
			return nil, "", fmt.Errorf("读取语音文件失败: %w", err)
		}
		defer f.Close()

		part, err := w.CreateFormFile("audio", query.Audio.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// isClientTimeout 识别 http.Client 自身超时（net.Error 且 Timeout）
func isClientTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
