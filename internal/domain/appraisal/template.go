package appraisal

import (
	"encoding/json"
	"time"
)

// Template is a rating form definition. Content always normalizes to the
// category schema in memory; the legacy flat-question schema only exists on
// disk and is migrated once at load.
type Template struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	RatingScale int                `json:"ratingScale"`
	Categories  []TemplateCategory `json:"categories"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type TemplateCategory struct {
	Name      string             `json:"name"`
	Weight    float64            `json:"weight"`
	Questions []TemplateQuestion `json:"questions"`
}

type TemplateQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// templateContent is the on-disk union: current payloads carry categories,
// legacy payloads a flat questions list.
type templateContent struct {
	Categories []TemplateCategory `json:"categories"`
	Questions  []TemplateQuestion `json:"questions"`
}

// NormalizeTemplateContent decodes stored template content and migrates the
// legacy schema: a flat question list becomes a single full-weight General
// category. Current-schema payloads pass through untouched.
func NormalizeTemplateContent(raw []byte) ([]TemplateCategory, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var content templateContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, err
	}
	if len(content.Categories) > 0 {
		return content.Categories, nil
	}
	if len(content.Questions) > 0 {
		return []TemplateCategory{{
			Name:      "General",
			Weight:    1,
			Questions: content.Questions,
		}}, nil
	}
	return nil, nil
}
