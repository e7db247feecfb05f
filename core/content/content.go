// Package content holds the generative content types surrounding a planet
// visit: city sketches, habitability profiles and the personas the child can
// talk to. Concrete generation clients live in subpackages.
package content

// CitySketch describes an imagined future city on a planet. All fields are
// child-readable prose except CityImagePrompt, which is an English
// text-to-image prompt.
type CitySketch struct {
	CityName        string `json:"cityName"`
	CityOverview    string `json:"cityOverview"`
	Lifestyle       string `json:"lifestyle"`
	Government      string `json:"government"`
	Military        string `json:"military"`
	Technology      string `json:"technology"`
	CityImagePrompt string `json:"cityImagePrompt"`
}

// PlanetProfile is a speculative habitability analysis of a planet or moon.
type PlanetProfile struct {
	LifePossibility         string   `json:"lifePossibility"`
	DominantLifeForm        string   `json:"dominantLifeForm"`
	Reasoning               string   `json:"reasoning"`
	AdaptationFeatures      string   `json:"adaptationFeatures"`
	Lifespan                string   `json:"lifespan"`
	LifeCycle               string   `json:"lifeCycle"`
	AtmosphericConditions   string   `json:"atmosphericConditions"`
	PlanetImagePrompt       string   `json:"planetImagePrompt"`
	LifeFormImagePrompt     string   `json:"lifeFormImagePrompt"`
	EnvironmentImagePrompts []string `json:"environmentImagePrompts"`
}
