package models

// Enhancement is the supplementary text layered onto a module's static
// content. All four fields are always populated - if the generation service
// fails or returns a partial object, defaults fill the gaps.
type Enhancement struct {
	DailyTip       string `json:"dailyTip"`       // short study advice for today's module
	DeeperQuestion string `json:"deeperQuestion"` // a follow-up question to push thinking further
	ConnectionHint string `json:"connectionHint"` // how this module connects to the wider system
	Motivation     string `json:"motivation"`     // one-line encouragement
}
