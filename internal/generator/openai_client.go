package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"meal-server/internal/models"
)

const mealSystemPrompt = `You are a nutrition assistant. Given a free-text meal description, respond with a single JSON object:
{"name": string, "description": string, "components": [{"name": string, "brand": string, "quantity": string, "totalWeight": number, "nutrientProfile": {"energyKcal": number, "fats": number, "saturatedFats": number, "carbohydrates": number, "sugars": number, "fibre": number, "protein": number, "salt": number, "containsDairy": bool, "containsGluten": bool, "containsNuts": bool}}]}
Weights are grams, energy is kcal. Estimate realistic portions. If the text does not describe food, respond with {"error": "<short reason>"}.`

const componentSystemPrompt = `You are a nutrition assistant. Given an existing meal (JSON) and a free-text description of one additional item, respond with a single JSON object for that item only:
{"name": string, "brand": string, "quantity": string, "totalWeight": number, "nutrientProfile": {"energyKcal": number, "fats": number, "saturatedFats": number, "carbohydrates": number, "sugars": number, "fibre": number, "protein": number, "salt": number, "containsDairy": bool, "containsGluten": bool, "containsNuts": bool}}
Use the meal as context for portion estimation. If the text does not describe food, respond with {"error": "<short reason>"}.`

// Wire shapes returned by the model. Component ids are assigned here, not by
// the model.
type wireComponent struct {
	Name        string                 `json:"name"`
	Brand       string                 `json:"brand"`
	Quantity    string                 `json:"quantity"`
	TotalWeight float64                `json:"totalWeight"`
	Profile     models.NutrientProfile `json:"nutrientProfile"`
	Err         string                 `json:"error"`
}

type wireMeal struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Components  []wireComponent `json:"components"`
	Err         string          `json:"error"`
}

// OpenAIGenerator implements Generator on top of the OpenAI chat API.
type OpenAIGenerator struct {
	client  *openaigo.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewOpenAIGenerator creates a Generator backed by the OpenAI API.
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration, logger *zap.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:  openaigo.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		logger:  logger.Named("OpenAIGenerator"),
	}
}

func (g *OpenAIGenerator) complete(ctx context.Context, systemPrompt, userInput string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: g.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openaigo.ChatMessageRoleUser, Content: userInput},
		},
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	MetricsRecordRequestDuration(g.model, time.Since(start))
	if err != nil {
		MetricsIncrementRequests(g.model, "error")
		g.logger.Error("OpenAI request failed", zap.String("model", g.model), zap.Error(err))
		return "", &GenerationError{Reason: fmt.Sprintf("generation service unavailable: %v", err)}
	}
	MetricsIncrementRequests(g.model, "success")

	if len(resp.Choices) == 0 {
		return "", &GenerationError{Reason: "generation service returned no choices"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateMeal implements Generator.
func (g *OpenAIGenerator) GenerateMeal(ctx context.Context, description string) (*models.Meal, error) {
	log := g.logger.With(zap.Int("inputLength", len(description)))
	log.Debug("Generating meal from description")

	content, err := g.complete(ctx, mealSystemPrompt, description)
	if err != nil {
		return nil, err
	}

	var wm wireMeal
	if err := json.Unmarshal([]byte(content), &wm); err != nil {
		log.Warn("Failed to parse generated meal JSON", zap.Error(err))
		return nil, &GenerationError{Reason: "generation service returned malformed data"}
	}
	if wm.Err != "" {
		return nil, &GenerationError{Reason: wm.Err}
	}
	if len(wm.Components) == 0 {
		return nil, &GenerationError{Reason: "no food components could be identified"}
	}

	meal := &models.Meal{
		Name:        wm.Name,
		Description: wm.Description,
		Components:  make([]models.Component, 0, len(wm.Components)),
	}
	for _, wc := range wm.Components {
		meal.Components = append(meal.Components, models.Component{
			ID:          uuid.New(),
			Name:        wc.Name,
			Brand:       wc.Brand,
			Quantity:    wc.Quantity,
			TotalWeight: wc.TotalWeight,
			Profile:     wc.Profile,
		})
	}
	meal.RecomputeProfile()

	log.Debug("Meal generated", zap.Int("components", len(meal.Components)))
	return meal, nil
}

// GenerateComponent implements Generator.
func (g *OpenAIGenerator) GenerateComponent(ctx context.Context, meal *models.Meal, description string) (*models.Component, error) {
	mealJSON, err := json.Marshal(meal)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meal context: %w", err)
	}

	userInput := fmt.Sprintf("Meal: %s\nNew item: %s", mealJSON, description)
	content, err := g.complete(ctx, componentSystemPrompt, userInput)
	if err != nil {
		return nil, err
	}

	var wc wireComponent
	if err := json.Unmarshal([]byte(content), &wc); err != nil {
		g.logger.Warn("Failed to parse generated component JSON", zap.Error(err))
		return nil, &GenerationError{Reason: "generation service returned malformed data"}
	}
	if wc.Err != "" {
		return nil, &GenerationError{Reason: wc.Err}
	}
	if wc.Name == "" {
		return nil, &GenerationError{Reason: "no food component could be identified"}
	}

	return &models.Component{
		ID:          uuid.New(),
		Name:        wc.Name,
		Brand:       wc.Brand,
		Quantity:    wc.Quantity,
		TotalWeight: wc.TotalWeight,
		Profile:     wc.Profile,
	}, nil
}
