package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hugohenrick/medbot-analytics/pkg/logger"
)

const (
	geminiAPIEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel      = "gemini-2.0-flash"
)

// Client encapsula o acesso à API Gemini do Google
type Client struct {
	apiKey string
	model  string
	client *http.Client
	logger logger.Logger
}

// NewClient cria um novo cliente Gemini a partir das variáveis de ambiente.
// Retorna erro se GEMINI_API_KEY não estiver definida.
func NewClient(logger logger.Logger) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY não encontrada nas variáveis de ambiente")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Client{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateContent envia um prompt para o modelo e retorna o texto gerado
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     0.1,
			MaxOutputTokens: 2048,
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		c.logger.Error("Erro ao serializar requisição", "error", err)
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiAPIEndpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqJSON))
	if err != nil {
		c.logger.Error("Erro ao criar requisição HTTP", "error", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Enviando requisição para API Gemini", "model", c.model, "promptLen", len(prompt))

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Erro na chamada da API Gemini", "error", err)
		return "", fmt.Errorf("erro na comunicação com a API Gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Erro ao ler resposta da API Gemini", "error", err)
		return "", err
	}

	var response generateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		c.logger.Error("Erro ao decodificar resposta da API Gemini", "error", err, "status", resp.StatusCode)
		return "", fmt.Errorf("resposta inválida da API Gemini: %w", err)
	}

	if response.Error != nil {
		c.logger.Error("API Gemini retornou erro",
			"code", response.Error.Code,
			"status", response.Error.Status,
			"message", response.Error.Message)
		return "", fmt.Errorf("API Gemini retornou erro: %s", response.Error.Message)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("API Gemini não retornou candidatos")
	}

	var sb strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return sb.String(), nil
}
