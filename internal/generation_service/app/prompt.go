package app

import (
	"strings"

	"github.com/batiku-id/batiku/internal/generation_service/domain"
)

var familyQualifiers = map[string]string{
	domain.FamilyKawung: "kawung motif of interlocking four-lobed rosettes",
	domain.FamilyParang: "parang motif of diagonal blade-like waves",
	domain.FamilyCeplok: "ceplok motif of repeating geometric medallions",
	domain.FamilySemen:  "semen motif with stylized flora and mountain ornaments",
}

var styleQualifiers = map[string]string{
	domain.StyleTulis: "hand-drawn batik tulis linework with fine isen filler details",
	domain.StyleCap:   "stamped batik cap repetition with crisp uniform outlines",
}

var paletteQualifiers = map[string]string{
	domain.PaletteSogan:   "classic sogan palette of deep browns and cream",
	domain.PaletteIndigo:  "indigo and white palette",
	domain.PalettePesisir: "bright coastal pesisir palette",
}

const promptSuffix = "seamless repeating batik textile tile, flat print, full frame, no border"

// composePrompt joins the free-text description with the fixed qualifiers
// for the selected family, style and palette.
func composePrompt(req domain.GenerateRequest) string {
	parts := make([]string, 0, 5)
	if p := strings.TrimSpace(req.Prompt); p != "" {
		parts = append(parts, p)
	}
	if q, ok := familyQualifiers[req.Family]; ok {
		parts = append(parts, q)
	}
	if q, ok := styleQualifiers[req.Style]; ok {
		parts = append(parts, q)
	}
	if q, ok := paletteQualifiers[req.Palette]; ok {
		parts = append(parts, q)
	}
	parts = append(parts, promptSuffix)
	return strings.Join(parts, ", ")
}
