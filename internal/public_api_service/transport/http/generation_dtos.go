package http

import (
	generationdomain "github.com/batiku-id/batiku/internal/generation_service/domain"
)

// GenerateBatikRequestDTO is the body of POST /api/generate-batik.
type GenerateBatikRequestDTO struct {
	Prompt  string `json:"prompt"`
	Family  string `json:"family" validate:"omitempty,oneof=kawung parang ceplok semen"`
	Style   string `json:"style" validate:"omitempty,oneof=tulis cap"`
	Palette string `json:"palette" validate:"omitempty,oneof=sogan indigo pesisir"`
}

// GenerationResponseDTO is shared by both generation routes.
type GenerationResponseDTO struct {
	JobID      string                       `json:"jobId"`
	Candidates []generationdomain.Candidate `json:"candidates"`
}
