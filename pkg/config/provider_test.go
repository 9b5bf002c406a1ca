package config

import (
	"testing"
)

func TestBuildProvider(t *testing.T) {
	tests := []struct {
		name           string
		cliModel       string
		cliBaseURL     string
		cliAPIKey      string
		envAPIKey      string
		envBaseURL     string
		defaultModel   string
		expectedModel  string
		expectedAPIKey string
		expectedURL    string
	}{
		{
			name:           "CLI flag takes precedence over env",
			cliModel:       "gpt-4o",
			cliBaseURL:     "https://cli.example.com",
			cliAPIKey:      "cli-key",
			envAPIKey:      "env-key",
			envBaseURL:     "https://env.example.com",
			defaultModel:   "gpt-4o-mini",
			expectedModel:  "gpt-4o",
			expectedAPIKey: "cli-key",
			expectedURL:    "https://cli.example.com",
		},
		{
			name:           "environment variables used when CLI empty",
			cliModel:       "",
			cliBaseURL:     "",
			cliAPIKey:      "",
			envAPIKey:      "env-key",
			envBaseURL:     "https://env.example.com",
			defaultModel:   "gpt-4o-mini",
			expectedModel:  "gpt-4o-mini",
			expectedAPIKey: "env-key",
			expectedURL:    "https://env.example.com",
		},
		{
			name:           "missing API key still yields a provider",
			cliModel:       "",
			cliBaseURL:     "",
			cliAPIKey:      "",
			envAPIKey:      "",
			envBaseURL:     "",
			defaultModel:   "gpt-4o-mini",
			expectedModel:  "gpt-4o-mini",
			expectedAPIKey: "",
			expectedURL:    "https://api.openai.com/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobalManager()
			t.Setenv("OPENAI_API_KEY", tt.envAPIKey)
			t.Setenv("OPENAI_BASE_URL", tt.envBaseURL)

			provider := BuildProvider(tt.cliModel, tt.cliBaseURL, tt.cliAPIKey, tt.defaultModel)
			if provider == nil {
				t.Fatal("Expected a provider, got nil")
			}

			if provider.GetModel() != tt.expectedModel {
				t.Errorf("Expected model %q, got %q", tt.expectedModel, provider.GetModel())
			}
			if provider.GetAPIKey() != tt.expectedAPIKey {
				t.Errorf("Expected API key %q, got %q", tt.expectedAPIKey, provider.GetAPIKey())
			}
			if provider.GetBaseURL() != tt.expectedURL {
				t.Errorf("Expected base URL %q, got %q", tt.expectedURL, provider.GetBaseURL())
			}
		})
	}
}

func TestBuildProvider_ConfigFileFallback(t *testing.T) {
	resetGlobalManager()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	configPath := t.TempDir() + "/config.json"
	if err := Initialize(configPath); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer resetGlobalManager()

	llm := GetLLM()
	llm.SetModel("file-model")
	llm.SetBaseURL("https://file.example.com")
	llm.SetAPIKey("file-key")

	provider := BuildProvider("", "", "", "gpt-4o-mini")

	if provider.GetModel() != "file-model" {
		t.Errorf("Expected config file model, got %q", provider.GetModel())
	}
	if provider.GetBaseURL() != "https://file.example.com" {
		t.Errorf("Expected config file base URL, got %q", provider.GetBaseURL())
	}
	if provider.GetAPIKey() != "file-key" {
		t.Errorf("Expected config file API key, got %q", provider.GetAPIKey())
	}
}
