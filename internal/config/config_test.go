package config

import (
	"log/slog"
	"os"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"CHUNK_SIZE", "CHUNK_OVERLAP", "QDRANT_VECTOR_SIZE",
		"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
		"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY",
		"QDRANT_URL", "QDRANT_COLLECTION",
		"RETRIEVAL_TOP_K", "RERANK_TOP_N",
		"DB_PATH", "API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config with defaults",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("DB_PATH", t.TempDir()+"/docchat.db")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.ChunkSize == 800 &&
					cfg.ChunkOverlap == 150 &&
					cfg.QdrantVectorSize == 768 &&
					cfg.QdrantCollection == "documents" &&
					cfg.RetrievalTopK == 10 &&
					cfg.RerankTopN == 5 &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name: "missing vector size",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", t.TempDir()+"/docchat.db")
			},
			wantErr: true,
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "not-a-number")
				setEnv("DB_PATH", t.TempDir()+"/docchat.db")
			},
			wantErr: true,
		},
		{
			name: "overlap must stay below chunk size",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("CHUNK_SIZE", "100")
				setEnv("CHUNK_OVERLAP", "100")
				setEnv("DB_PATH", t.TempDir()+"/docchat.db")
			},
			wantErr: true,
		},
		{
			name: "custom chunk window",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("CHUNK_SIZE", "400")
				setEnv("CHUNK_OVERLAP", "80")
				setEnv("DB_PATH", t.TempDir()+"/docchat.db")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.ChunkSize == 400 && cfg.ChunkOverlap == 80
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("LOG_LEVEL", "loud")
				setEnv("DB_PATH", t.TempDir()+"/docchat.db")
			},
			wantErr: true,
		},
		{
			name: "json log format",
			setupEnv: func(t *testing.T) {
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("LOG_FORMAT", "json")
				setEnv("LOG_LEVEL", "debug")
				setEnv("DB_PATH", t.TempDir()+"/docchat.db")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LogFormat == "json" && cfg.LogLevel == slog.LevelDebug
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Error("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}
