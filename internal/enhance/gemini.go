package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"tianji-daily/internal/models"
)

const defaultModel = "gemini-2.0-flash"

// Gemini asks the Gemini API for the four enhancement fields with a single
// structured prompt. No retries - one shot, then fall back.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger

	// callModel is swapped out in tests so no network is needed
	callModel func(ctx context.Context, prompt string) (string, error)
}

// NewGemini creates the networked enhancer. The timeout bounds the one API
// call so a hung service can't stall page generation.
func NewGemini(apiKey, model string, timeout time.Duration, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	g := &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
	g.callModel = func(ctx context.Context, prompt string) (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx,
			g.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
			},
		)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return g, nil
}

// Enhance implements Enhancer. Any failure - transport, timeout, non-JSON
// response, missing keys - degrades to defaults without surfacing an error.
func (g *Gemini) Enhance(ctx context.Context, m models.Module, position, total int) models.Enhancement {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.callModel(ctx, buildPrompt(m, position, total))
	if err != nil {
		g.logger.Warn("enhancement call failed, using defaults",
			zap.String("module", m.ID),
			zap.Error(err))
		return Defaults(m)
	}

	return parseResponse(text, m, g.logger)
}

// buildPrompt names the module's fields in one natural-language prompt and
// asks for a JSON object with exactly the four enhancement keys
func buildPrompt(m models.Module, position, total int) string {
	return fmt.Sprintf(`你是一位精通倪海厦天纪课程的学习助手。请为今天的学习模块（第%d/%d个）生成增强内容。

今日模块信息：
- 模块ID: %s
- 标题: %s
- 视频集数: 第%d集
- 教材页码: 第%s页
- 学习问题: %s
- 核心概念: %s

请生成以下JSON格式的增强内容（只输出JSON，不要其他内容）：

{
    "dailyTip": "今日学习小贴士（50字以内，针对本模块的学习建议）",
    "deeperQuestion": "一个更深层次的思考问题（引导学生深入思考）",
    "connectionHint": "与其他知识的关联提示（如何将本模块与命理学其他知识联系）",
    "motivation": "一句激励语（古人智慧或倪海厦老师的教导风格）"
}`,
		position, total,
		m.ID, m.Title, m.Episode, m.TextbookPages, m.Question,
		strings.Join(m.KeyConcepts, "、"))
}

// parseResponse tries a direct JSON parse, then a balanced {...} span
// salvaged out of the surrounding text, then gives up and uses defaults.
// A parsed object missing keys gets defaults for exactly the missing ones.
func parseResponse(text string, m models.Module, logger *zap.Logger) models.Enhancement {
	text = strings.TrimSpace(text)

	var e models.Enhancement
	if err := json.Unmarshal([]byte(text), &e); err == nil {
		return fillDefaults(e, m)
	}

	if span := extractJSON(text); span != "" {
		if err := json.Unmarshal([]byte(span), &e); err == nil {
			return fillDefaults(e, m)
		}
	}

	logger.Warn("enhancement response was not usable JSON, using defaults",
		zap.String("module", m.ID),
		zap.Int("response_len", len(text)))
	return Defaults(m)
}
