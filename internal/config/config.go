package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendGemini Backend = "gemini"
	BackendVertex Backend = "vertex"
)

type Config struct {
	Backend Backend

	// Gemini API backend
	APIKey string

	// Vertex backend
	GCPProjectID string
	GCPLocation  string

	ModelName string

	// Dictation: external transcriber command, empty means the
	// capability is absent. Language is passed to the command.
	SpeechCommand  string
	SpeechLanguage string

	// Subject catalog override; empty uses the embedded catalog.
	SubjectsFile string

	IdentityFile string
	LogFile      string

	UseMockTutor bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads .env (if present) and all env vars and builds the config.
func Load() *Config {
	_ = godotenv.Load()

	backendStr := getEnv("UST_BACKEND", "gemini")
	var backend Backend
	switch backendStr {
	case "vertex":
		backend = BackendVertex
	default:
		backend = BackendGemini
	}

	cfg := &Config{
		Backend: backend,

		APIKey: getEnv("UST_API_KEY", os.Getenv("GEMINI_API_KEY")),

		GCPProjectID: getEnv("UST_GCP_PROJECT", ""),
		GCPLocation:  getEnv("UST_GCP_LOCATION", "us-central1"),

		ModelName: getEnv("UST_MODEL_NAME", "gemini-2.5-flash"),

		SpeechCommand:  getEnv("UST_SPEECH_CMD", ""),
		SpeechLanguage: getEnv("UST_SPEECH_LANG", "ur-PK"),

		SubjectsFile: getEnv("UST_SUBJECTS_FILE", ""),

		IdentityFile: getEnv("UST_IDENTITY_FILE", defaultStatePath("identity.json")),
		LogFile:      getEnv("UST_LOG_FILE", defaultStatePath("ustaad.log")),

		UseMockTutor: getBoolEnv("UST_USE_MOCK_TUTOR", false),
	}

	return cfg
}

func defaultStatePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "ustaad", name)
}
