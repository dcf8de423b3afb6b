// Package enhance supplies the optional AI-generated text for a page.
//
// The contract is deliberately one-sided: Enhance never returns an error.
// Page generation must not fail because a text-generation service is down,
// slow, or returned garbage, so every failure path here degrades to the
// static defaults and logs a warning.
package enhance

import (
	"context"

	"tianji-daily/internal/models"
)

// Enhancer produces the four supplementary text fields for a module.
// Two implementations exist: Gemini (networked) and Static (the defaults),
// selected by configuration so tests never need network access.
type Enhancer interface {
	Enhance(ctx context.Context, m models.Module, position, total int) models.Enhancement
}

// Defaults is the hard-coded fallback content set for a module
func Defaults(m models.Module) models.Enhancement {
	return models.Enhancement{
		DailyTip:       "认真观看视频，做好笔记，理解比记忆更重要。",
		DeeperQuestion: m.Question,
		ConnectionHint: "思考本模块与整体命理体系的关系。",
		Motivation:     "学无止境，温故知新。",
	}
}

// fillDefaults replaces exactly the empty fields with defaults, keeping
// whatever usable fields a partial service response did provide
func fillDefaults(e models.Enhancement, m models.Module) models.Enhancement {
	def := Defaults(m)
	if e.DailyTip == "" {
		e.DailyTip = def.DailyTip
	}
	if e.DeeperQuestion == "" {
		e.DeeperQuestion = def.DeeperQuestion
	}
	if e.ConnectionHint == "" {
		e.ConnectionHint = def.ConnectionHint
	}
	if e.Motivation == "" {
		e.Motivation = def.Motivation
	}
	return e
}

// Static always answers with the defaults. Used when no API key is
// configured, when --no-enhance is set, and in tests.
type Static struct{}

// Enhance implements Enhancer
func (Static) Enhance(_ context.Context, m models.Module, _, _ int) models.Enhancement {
	return Defaults(m)
}
