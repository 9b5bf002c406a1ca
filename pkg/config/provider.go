package config

import (
	"os"

	"github.com/notegarden/notegarden/pkg/llm/openai"
)

// BuildProvider creates an LLM provider based on configuration precedence:
// CLI flags > Environment variables > Config file > Defaults
//
// A missing API key is not an error here: the provider is still returned and
// callers gate enrichment on GetAPIKey being non-empty.
func BuildProvider(cliModel, cliBaseURL, cliAPIKey, defaultModel string) *openai.Provider {
	// Start with CLI values (empty strings if not provided)
	finalModel := cliModel
	finalBaseURL := cliBaseURL
	finalAPIKey := cliAPIKey

	// Fall back to environment variables if CLI values are empty
	if finalAPIKey == "" {
		finalAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if finalBaseURL == "" {
		finalBaseURL = os.Getenv("OPENAI_BASE_URL")
	}

	// Get config file settings
	llmConfigFromFile := GetLLM()

	// Fall back to config file if still empty
	if llmConfigFromFile != nil {
		// Model: Use config file only if CLI didn't set a non-default value
		if cliModel == "" || cliModel == defaultModel {
			if configFileModel := llmConfigFromFile.GetModel(); configFileModel != "" {
				finalModel = configFileModel
			}
		}
		// BaseURL: Use config file if still empty after env check
		if finalBaseURL == "" {
			if configFileBaseURL := llmConfigFromFile.GetBaseURL(); configFileBaseURL != "" {
				finalBaseURL = configFileBaseURL
			}
		}
		// APIKey: Use config file if still empty after env check
		if finalAPIKey == "" {
			if configFileAPIKey := llmConfigFromFile.GetAPIKey(); configFileAPIKey != "" {
				finalAPIKey = configFileAPIKey
			}
		}
	}

	// Use default model if still not set
	if finalModel == "" {
		finalModel = defaultModel
	}

	providerOpts := []openai.ProviderOption{
		openai.WithModel(finalModel),
	}
	if finalBaseURL != "" {
		providerOpts = append(providerOpts, openai.WithBaseURL(finalBaseURL))
	}

	return openai.NewProvider(finalAPIKey, providerOpts...)
}
