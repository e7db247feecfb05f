package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/planetpals/starcall-core/core/content"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

const imagePromptInstruction = "You are an expert prompt engineer for a " +
	"text-to-image AI model. Your task is to create a detailed, visually " +
	"rich, and artistic prompt in English based on the user's subject. The " +
	"prompt should be a single continuous string of descriptive keywords " +
	"and phrases, separated by commas. Focus on style, lighting, " +
	"composition, and specific details. Do not add any conversational text " +
	"or explanations. Only output the prompt itself."

// ImagePrompt turns a subject into a one-line artistic text-to-image prompt.
func (c *Client) ImagePrompt(ctx context.Context, subject string) (string, error) {
	ctx, span := tracer.Start(ctx, "create image prompt")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", c.model))

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.model,
		genai.Text(fmt.Sprintf("Subject: %q", subject)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(imagePromptInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		err = fmt.Errorf("failed to create image prompt: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Text()), nil
}

const souvenirPromptTemplate = `You are an AI digital artist. The user has provided a low-quality selfie. Your task is to use this selfie ONLY as a reference for their facial features, hair style, and general likeness.
DO NOT simply edit the original photo or place it in a new background.
Instead, you must completely RE-IMAGINE and RE-DRAW the person as a space traveler, creating a new, high-quality, artistic image.

The setting is the city of %q on the planet %q.
- City description: %q
- Planet environment hints: %q

Incorporate the style of the city and planet into the artwork. The person should be wearing futuristic, sci-fi appropriate clothing. The final result should be a stunning digital painting or concept art that serves as a souvenir, while making sure the person in the artwork is clearly recognizable as the person from the selfie. Make the final image look cool and artistic, not like a simple photo edit.`

// SouvenirPhoto re-imagines a selfie as concept art of the visitor in the
// sketched city. It returns the generated image bytes and their mime type.
func (c *Client) SouvenirPhoto(ctx context.Context, selfie []byte, selfieMIMEType string, planetName string, sketch content.CitySketch) ([]byte, string, error) {
	ctx, span := tracer.Start(ctx, "generate souvenir photo")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", c.imageModel))

	prompt := fmt.Sprintf(souvenirPromptTemplate,
		sketch.CityName, planetName, sketch.CityOverview, sketch.Lifestyle)

	parts := []*genai.Part{
		genai.NewPartFromBytes(selfie, selfieMIMEType),
		genai.NewPartFromText(prompt),
	}

	resp, err := c.genaiClient.Models.GenerateContent(ctx, c.imageModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	)
	if err != nil {
		err = fmt.Errorf("failed to generate souvenir photo: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, "", err
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, respPart := range candidate.Content.Parts {
			if respPart.InlineData == nil {
				continue
			}
			if strings.HasPrefix(respPart.InlineData.MIMEType, "image/") {
				return respPart.InlineData.Data, respPart.InlineData.MIMEType, nil
			}
		}
	}

	err = fmt.Errorf("no image returned for souvenir photo")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, "", err
}
