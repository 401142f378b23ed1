package domain

// Motif enumerations offered by the studio generator form. Values outside
// these sets are rejected at the API boundary.
const (
	FamilyKawung = "kawung"
	FamilyParang = "parang"
	FamilyCeplok = "ceplok"
	FamilySemen  = "semen"

	StyleTulis = "tulis"
	StyleCap   = "cap"

	PaletteSogan   = "sogan"
	PaletteIndigo  = "indigo"
	PalettePesisir = "pesisir"
)

// GenerateRequest describes one text-to-image generation job.
type GenerateRequest struct {
	Prompt  string
	Family  string
	Style   string
	Palette string
}

// Candidate is one generated image option, uploaded to object storage and
// presented to the user for selection.
type Candidate struct {
	ImageURL string `json:"imageUrl"`
	Idx      int    `json:"idx"`
}

// GenerationResult is the outcome of one generation job: all candidates
// uploaded, in their original 1..N order.
type GenerationResult struct {
	JobID      string
	Candidates []Candidate
}
