package gemini

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/planetpals/starcall-core/core/content"
	"go.opentelemetry.io/otel/codes"
)

type citySketchSchema struct {
	CityName        string `json:"cityName" jsonschema_description:"A creative and fitting name for the city"`
	CityOverview    string `json:"cityOverview" jsonschema_description:"A general description of the city, its architecture and appearance"`
	Lifestyle       string `json:"lifestyle" jsonschema_description:"A description of the lifestyle, culture and everyday activities of the inhabitants"`
	Government      string `json:"government" jsonschema_description:"A description of the governing system and political structure of the city"`
	Military        string `json:"military" jsonschema_description:"A description of the military, defensive and security systems"`
	Technology      string `json:"technology" jsonschema_description:"A description of the technology level, innovations and tools in use"`
	CityImagePrompt string `json:"cityImagePrompt" jsonschema_description:"A precise, artistic English text-to-image prompt for a picture of the city. Example: \"futuristic martian city, red dust, glass domes, cyberpunk, hyperrealistic, octane render, 8k\""`
}

// SketchCity imagines a plausible futuristic city on the described planet or
// moon.
func (c *Client) SketchCity(ctx context.Context, planetDescription string) (*content.CitySketch, error) {
	ctx, span := tracer.Start(ctx, "sketch city")
	defer span.End()

	prompt := fmt.Sprintf(`You are an intelligent life simulator. Based on known scientific data or the description provided for the planet or moon below, design a plausible futuristic city. The descriptions should be creative, science-fictional and engaging.

Planet/moon: %q

Provide detailed, creative and engaging descriptions for every section.`, planetDescription)

	sketch, err := promptJSONSchema(ctx, c.apiKey, c.model, prompt, 0.8, citySketchSchema{})
	if err != nil {
		err = fmt.Errorf("failed to sketch city: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := content.CitySketch{}
	if err := copier.Copy(&out, sketch); err != nil {
		err = fmt.Errorf("failed to map city sketch: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &out, nil
}
