package enhance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tianji-daily/internal/models"
)

var testModule = models.Module{
	ID:       "EP01-Q03",
	Title:    "五行的生克",
	Question: "五行相生相克的顺序是什么？",
	Episode:  1,
	VideoURL: "https://www.youtube.com/watch?v=jJMWFi0nJ6c",
}

func TestStaticAlwaysPopulatesAllFour(t *testing.T) {
	e := Static{}.Enhance(context.Background(), testModule, 3, 10)

	assert.NotEmpty(t, e.DailyTip)
	assert.NotEmpty(t, e.DeeperQuestion)
	assert.NotEmpty(t, e.ConnectionHint)
	assert.NotEmpty(t, e.Motivation)
	// the default deeper question is the module's own question
	assert.Equal(t, testModule.Question, e.DeeperQuestion)
}

func TestParseResponseValidJSON(t *testing.T) {
	text := `{"dailyTip":"tip","deeperQuestion":"deeper","connectionHint":"hint","motivation":"go"}`
	e := parseResponse(text, testModule, zap.NewNop())

	assert.Equal(t, "tip", e.DailyTip)
	assert.Equal(t, "deeper", e.DeeperQuestion)
	assert.Equal(t, "hint", e.ConnectionHint)
	assert.Equal(t, "go", e.Motivation)
}

func TestParseResponseJSONWrappedInProse(t *testing.T) {
	text := "Here is your content:\n```json\n" +
		`{"dailyTip":"tip","deeperQuestion":"deeper","connectionHint":"hint","motivation":"go"}` +
		"\n```\nHope that helps!"
	e := parseResponse(text, testModule, zap.NewNop())

	assert.Equal(t, "tip", e.DailyTip)
	assert.Equal(t, "go", e.Motivation)
}

func TestParseResponsePartialObjectGetsDefaultsForMissingOnly(t *testing.T) {
	text := `{"dailyTip":"x"}`
	e := parseResponse(text, testModule, zap.NewNop())
	def := Defaults(testModule)

	assert.Equal(t, "x", e.DailyTip) // kept
	assert.Equal(t, def.DeeperQuestion, e.DeeperQuestion)
	assert.Equal(t, def.ConnectionHint, e.ConnectionHint)
	assert.Equal(t, def.Motivation, e.Motivation)
}

func TestParseResponseGarbageFallsBackEntirely(t *testing.T) {
	def := Defaults(testModule)
	for _, text := range []string{"", "not json", "{broken", "[1,2,3]"} {
		e := parseResponse(text, testModule, zap.NewNop())
		require.Equal(t, def, e, "input %q", text)
	}
}

// geminiForTest builds a Gemini with the model call stubbed, no client
func geminiForTest(call func(ctx context.Context, prompt string) (string, error)) *Gemini {
	return &Gemini{
		model:     defaultModel,
		timeout:   time.Second,
		logger:    zap.NewNop(),
		callModel: call,
	}
}

func TestGeminiEnhanceFallsBackWhenCallFails(t *testing.T) {
	g := geminiForTest(func(ctx context.Context, prompt string) (string, error) {
		return "", fmt.Errorf("service unavailable")
	})

	e := g.Enhance(context.Background(), testModule, 3, 10)
	assert.Equal(t, Defaults(testModule), e)
}

func TestGeminiEnhanceFallsBackOnTimeout(t *testing.T) {
	g := geminiForTest(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done() // a hung call only returns when the deadline fires
		return "", ctx.Err()
	})
	g.timeout = 10 * time.Millisecond

	e := g.Enhance(context.Background(), testModule, 3, 10)
	assert.Equal(t, Defaults(testModule), e)
}

func TestGeminiEnhanceUsesParsedResponse(t *testing.T) {
	g := geminiForTest(func(ctx context.Context, prompt string) (string, error) {
		// the prompt carries the module's fields
		assert.Contains(t, prompt, testModule.Title)
		return `{"dailyTip":"tip","deeperQuestion":"deeper","connectionHint":"hint","motivation":"go"}`, nil
	})

	e := g.Enhance(context.Background(), testModule, 3, 10)
	assert.Equal(t, "tip", e.DailyTip)
	assert.Equal(t, "go", e.Motivation)
}

func TestExtractJSONFindsFirstBalancedObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`prefix {"a":1} suffix`))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSON(`x {"a":{"b":2}} {"c":3}`))
	assert.Equal(t, `{"s":"has } inside"}`, extractJSON(`{"s":"has } inside"}`))
	assert.Equal(t, `{"s":"esc \" quote}"}`, extractJSON(`{"s":"esc \" quote}"}`))
}

func TestExtractJSONNothingToFind(t *testing.T) {
	assert.Empty(t, extractJSON("no object here"))
	assert.Empty(t, extractJSON("{never closes"))
	assert.Empty(t, extractJSON(""))
}
