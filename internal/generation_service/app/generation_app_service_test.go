package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiku-id/batiku/internal/generation_service/domain"
)

type mockImageModel struct {
	images        [][]byte
	err           error
	lastPrompt    string
	lastCount     int
	lastReference []byte
}

func (m *mockImageModel) GenerateImages(_ context.Context, prompt string, count int) ([][]byte, error) {
	m.lastPrompt = prompt
	m.lastCount = count
	return m.images, m.err
}

func (m *mockImageModel) GenerateVariations(_ context.Context, reference []byte, prompt string, count int) ([][]byte, error) {
	m.lastReference = reference
	m.lastPrompt = prompt
	m.lastCount = count
	return m.images, m.err
}

type mockUploader struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (m *mockUploader) Upload(_ context.Context, key string, _ []byte, contentType string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if contentType != "image/png" {
		return fmt.Errorf("unexpected content type %q", contentType)
	}
	m.keys = append(m.keys, key)
	return nil
}

func (m *mockUploader) PublicURL(key string) string {
	return "https://test-bucket.s3.us-east-1.amazonaws.com/" + key
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 40, G: 20, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fakeImages(n int) [][]byte {
	images := make([][]byte, n)
	for i := range images {
		images[i] = []byte(fmt.Sprintf("image-%d", i+1))
	}
	return images
}

func TestGenerateUploadsCandidatesInOrder(t *testing.T) {
	model := &mockImageModel{images: fakeImages(3)}
	uploader := &mockUploader{}
	svc := NewGenerationService(model, uploader, 3, 4, discardLogger())

	result, err := svc.Generate(context.Background(), domain.GenerateRequest{
		Prompt: "megamendung clouds",
		Family: domain.FamilyCeplok,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, model.lastCount)
	assert.Contains(t, model.lastPrompt, "megamendung clouds")

	require.Len(t, result.Candidates, 3)
	for i, c := range result.Candidates {
		assert.Equal(t, i+1, c.Idx, "candidates keep model order")
		assert.True(t, strings.HasSuffix(c.ImageURL, fmt.Sprintf("_%d.png", i+1)), "url %q", c.ImageURL)
		assert.True(t, strings.Contains(c.ImageURL, "generated/batik_"))
	}
	assert.True(t, strings.HasPrefix(result.JobID, "job_"))
	assert.Len(t, uploader.keys, 3)
}

func TestGenerateModelFailure(t *testing.T) {
	model := &mockImageModel{err: errors.New("throttled")}
	uploader := &mockUploader{}
	svc := NewGenerationService(model, uploader, 3, 4, discardLogger())

	_, err := svc.Generate(context.Background(), domain.GenerateRequest{Family: domain.FamilyParang})
	require.Error(t, err)
	assert.Empty(t, uploader.keys, "nothing uploaded when the model fails")
}

func TestGenerateUploadFailure(t *testing.T) {
	model := &mockImageModel{images: fakeImages(3)}
	uploader := &mockUploader{err: errors.New("bucket unavailable")}
	svc := NewGenerationService(model, uploader, 3, 4, discardLogger())

	_, err := svc.Generate(context.Background(), domain.GenerateRequest{Family: domain.FamilyParang})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
}

func TestVariationDefaultsPromptAndDownscales(t *testing.T) {
	model := &mockImageModel{images: fakeImages(4)}
	uploader := &mockUploader{}
	svc := NewGenerationService(model, uploader, 3, 4, discardLogger())

	result, err := svc.Variation(context.Background(), pngBytes(t, 2048, 1024), "")
	require.NoError(t, err)
	assert.Equal(t, defaultVariationPrompt, model.lastPrompt)
	assert.Equal(t, 4, model.lastCount)

	ref, _, err := image.Decode(bytes.NewReader(model.lastReference))
	require.NoError(t, err)
	bounds := ref.Bounds()
	assert.Equal(t, variationInputMaxPx, bounds.Dx(), "reference scaled to fit the model limit")
	assert.Equal(t, variationInputMaxPx/2, bounds.Dy(), "aspect ratio preserved")

	require.Len(t, result.Candidates, 4)
	assert.True(t, strings.Contains(result.Candidates[0].ImageURL, "generated/variation_"))
}

func TestVariationKeepsSmallReference(t *testing.T) {
	model := &mockImageModel{images: fakeImages(4)}
	svc := NewGenerationService(model, &mockUploader{}, 3, 4, discardLogger())

	_, err := svc.Variation(context.Background(), pngBytes(t, 300, 200), "keep the lines thin")
	require.NoError(t, err)
	assert.Equal(t, "keep the lines thin", model.lastPrompt)

	ref, _, err := image.Decode(bytes.NewReader(model.lastReference))
	require.NoError(t, err)
	assert.Equal(t, 300, ref.Bounds().Dx(), "small references are never enlarged")
	assert.Equal(t, 200, ref.Bounds().Dy())
}

func TestVariationRejectsUndecodableReference(t *testing.T) {
	svc := NewGenerationService(&mockImageModel{}, &mockUploader{}, 3, 4, discardLogger())

	_, err := svc.Variation(context.Background(), []byte("not an image"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding reference image")
}
