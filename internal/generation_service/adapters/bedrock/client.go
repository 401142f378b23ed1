// Package bedrock adapts the Amazon Bedrock runtime to the generation
// service's image-model port. Payloads follow the Titan Image Generator
// request schema.
package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type Client struct {
	runtime *bedrockruntime.Client
	modelID string
	logger  *slog.Logger
}

func New(ctx context.Context, modelID, region string, logger *slog.Logger) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Client{
		runtime: bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
		logger:  logger.With("component", "bedrock"),
	}, nil
}

type generationConfig struct {
	NumberOfImages int    `json:"numberOfImages"`
	Quality        string `json:"quality"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type textToImageParams struct {
	Text string `json:"text"`
}

type imageVariationParams struct {
	Images []string `json:"images"`
	Text   string   `json:"text,omitempty"`
}

type titanRequest struct {
	TaskType              string                `json:"taskType"`
	TextToImageParams     *textToImageParams    `json:"textToImageParams,omitempty"`
	ImageVariationParams  *imageVariationParams `json:"imageVariationParams,omitempty"`
	ImageGenerationConfig generationConfig      `json:"imageGenerationConfig"`
}

type titanResponse struct {
	Images []string `json:"images"`
	Error  string   `json:"error,omitempty"`
}

func defaultConfig(count int) generationConfig {
	return generationConfig{
		NumberOfImages: count,
		Quality:        "standard",
		Width:          1024,
		Height:         1024,
	}
}

// GenerateImages runs a TEXT_IMAGE task and returns the decoded images.
func (c *Client) GenerateImages(ctx context.Context, prompt string, count int) ([][]byte, error) {
	return c.invoke(ctx, titanRequest{
		TaskType:              "TEXT_IMAGE",
		TextToImageParams:     &textToImageParams{Text: prompt},
		ImageGenerationConfig: defaultConfig(count),
	})
}

// GenerateVariations runs an IMAGE_VARIATION task against one reference
// image.
func (c *Client) GenerateVariations(ctx context.Context, reference []byte, prompt string, count int) ([][]byte, error) {
	return c.invoke(ctx, titanRequest{
		TaskType: "IMAGE_VARIATION",
		ImageVariationParams: &imageVariationParams{
			Images: []string{base64.StdEncoding.EncodeToString(reference)},
			Text:   prompt,
		},
		ImageGenerationConfig: defaultConfig(count),
	})
}

func (c *Client) invoke(ctx context.Context, req titanRequest) ([][]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling model payload: %w", err)
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		Body:        payload,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("invoking model %s: %w", c.modelID, err)
	}

	var resp titanResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("model %s returned error: %s", c.modelID, resp.Error)
	}

	images := make([][]byte, 0, len(resp.Images))
	for i, b64 := range resp.Images {
		img, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("decoding generated image %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	c.logger.InfoContext(ctx, "model invocation complete", "task_type", req.TaskType, "images", len(images))
	return images, nil
}
