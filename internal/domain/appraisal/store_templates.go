package appraisal

import (
	"context"
	"encoding/json"
)

func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, rating_scale, content, created_at
    FROM appraisal_templates
    ORDER BY created_at, id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		var tpl Template
		var content []byte
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.RatingScale, &content, &tpl.CreatedAt); err != nil {
			return nil, err
		}
		// Legacy flat-question payloads migrate here, once, at load.
		tpl.Categories, err = NormalizeTemplateContent(content)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (s *Store) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	var tpl Template
	var content []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, rating_scale, content, created_at
    FROM appraisal_templates
    WHERE id = $1
  `, templateID).Scan(&tpl.ID, &tpl.Name, &tpl.RatingScale, &content, &tpl.CreatedAt)
	if err != nil {
		return nil, err
	}
	tpl.Categories, err = NormalizeTemplateContent(content)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *Store) CreateTemplate(ctx context.Context, name string, ratingScale int, categories []TemplateCategory) (string, error) {
	content, err := json.Marshal(templateContent{Categories: categories})
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_templates (name, rating_scale, content)
    VALUES ($1, $2, $3)
    RETURNING id
  `, name, ratingScale, content).Scan(&id)
	return id, err
}

func (s *Store) DeleteTemplate(ctx context.Context, templateID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM appraisal_templates WHERE id = $1", templateID)
	return err
}
