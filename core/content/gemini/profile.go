package gemini

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/planetpals/starcall-core/core/content"
	"go.opentelemetry.io/otel/codes"
)

type planetProfileSchema struct {
	LifePossibility         string   `json:"lifePossibility" jsonschema_description:"The likelihood of life existing (for example: high, medium, low, very unlikely)"`
	DominantLifeForm        string   `json:"dominantLifeForm" jsonschema_description:"A description of the probable dominant life form (for example: chemotrophic microbes, silicon-based life)"`
	Reasoning               string   `json:"reasoning" jsonschema_description:"Precise scientific reasoning for this prediction based on the planet's characteristics"`
	AdaptationFeatures      string   `json:"adaptationFeatures" jsonschema_description:"The key adaptation features this life form needs to survive"`
	Lifespan                string   `json:"lifespan" jsonschema_description:"A prediction of the planet's lifespan based on its host star and geology"`
	LifeCycle               string   `json:"lifeCycle" jsonschema_description:"A short description of the planet's life cycle (for example: formation, geologically active period, cooling and death)"`
	AtmosphericConditions   string   `json:"atmosphericConditions" jsonschema_description:"A precise analysis of atmospheric conditions including main components, pressure, temperature and weather phenomena"`
	PlanetImagePrompt       string   `json:"planetImagePrompt" jsonschema_description:"A precise English text-to-image prompt for a picture of the planet from space, as if taken by the Hubble or James Webb telescope"`
	LifeFormImagePrompt     string   `json:"lifeFormImagePrompt" jsonschema_description:"A precise, artistic English text-to-image prompt for a picture of the life form"`
	EnvironmentImagePrompts []string `json:"environmentImagePrompts" jsonschema_description:"Exactly two separate English prompts for pictures of two different environments on the planet's surface"`
}

// ProfilePlanet produces a speculative habitability analysis of the
// described planet or moon.
func (c *Client) ProfilePlanet(ctx context.Context, planetDescription string) (*content.PlanetProfile, error) {
	ctx, span := tracer.Start(ctx, "profile planet")
	defer span.End()

	prompt := fmt.Sprintf(`You are an expert astrobiologist and planetary scientist. Provide a comprehensive, precise scientific analysis of the planet or moon below. Based on its known characteristics, offer a reasonable, well-argued scientific hypothesis for every required aspect. Also craft four creative, artistic image prompts in English.

Planet/moon: %q

Provide detailed, creative and scientific descriptions for every section.`, planetDescription)

	profile, err := promptJSONSchema(ctx, c.apiKey, c.model, prompt, 0.7, planetProfileSchema{})
	if err != nil {
		err = fmt.Errorf("failed to profile planet: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := content.PlanetProfile{}
	if err := copier.Copy(&out, profile); err != nil {
		err = fmt.Errorf("failed to map planet profile: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &out, nil
}
