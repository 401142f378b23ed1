package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/batiku-id/batiku/internal/generation_service/domain"
)

func TestComposePrompt(t *testing.T) {
	prompt := composePrompt(domain.GenerateRequest{
		Prompt:  "dawn over rice terraces",
		Family:  domain.FamilyKawung,
		Style:   domain.StyleTulis,
		Palette: domain.PaletteSogan,
	})

	assert.True(t, strings.HasPrefix(prompt, "dawn over rice terraces, "), "free text leads the prompt")
	assert.Contains(t, prompt, "kawung motif")
	assert.Contains(t, prompt, "batik tulis")
	assert.Contains(t, prompt, "sogan palette")
	assert.True(t, strings.HasSuffix(prompt, promptSuffix))
}

func TestComposePromptSkipsUnknownQualifiers(t *testing.T) {
	prompt := composePrompt(domain.GenerateRequest{
		Prompt: "  geometric study  ",
		Family: "not-a-family",
	})
	assert.Equal(t, "geometric study, "+promptSuffix, prompt)
}

func TestComposePromptEmptyRequest(t *testing.T) {
	assert.Equal(t, promptSuffix, composePrompt(domain.GenerateRequest{}))
}
