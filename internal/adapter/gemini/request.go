package gemini

// Wire shapes of the generateContent request. The response is read with gjson
// paths, so it has no struct here.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

func newGenerateRequest(prompt string, temperature float64, maxOutputTokens int) generateRequest {
	return generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}
}

// Response paths.
const (
	pathErrorMessage = "error.message"
	pathText         = "candidates.0.content.parts.0.text"
)
