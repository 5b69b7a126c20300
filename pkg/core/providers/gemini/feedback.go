package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/core/types"
)

// feedbackSchema constrains the model to the submission verdict shape.
var feedbackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"potential": {
			Type:        genai.TypeInteger,
			Description: "Commercial potential score from 0 to 100.",
		},
		"feedback": {
			Type:        genai.TypeString,
			Description: "Two or three sentences of sharp A&R feedback.",
		},
		"vibe": {
			Type:        genai.TypeString,
			Description: "A short genre or mood tag for the submission.",
		},
	},
	Required: []string{"potential", "feedback", "vibe"},
}

// DemoFeedback scores one lyric submission with a single structured
// generation call.
func (c *Client) DemoFeedback(ctx context.Context, lyrics string) (*types.DemoFeedback, error) {
	lyrics = strings.TrimSpace(lyrics)
	if lyrics == "" {
		return nil, core.NewInvalidRequestErrorWithParam("demo submission is empty", "lyrics")
	}

	prompt := "Evaluate this demo submission for the label. Lyrics:\n\n" + lyrics
	resp, err := c.api.Models.GenerateContent(ctx, c.cfg.FeedbackModel, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(c.cfg.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    feedbackSchema,
	})
	if err != nil {
		return nil, core.NewProviderError("gemini", err)
	}

	return parseFeedback(resp.Text())
}

// parseFeedback decodes and bounds-checks the model verdict.
func parseFeedback(raw string) (*types.DemoFeedback, error) {
	var fb types.DemoFeedback
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return nil, core.NewProviderError("gemini", err)
	}
	if fb.Potential < 0 {
		fb.Potential = 0
	}
	if fb.Potential > 100 {
		fb.Potential = 100
	}
	return &fb, nil
}
