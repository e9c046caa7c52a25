package config

import "os"

// Config carries all environment-supplied settings. Nothing here is embedded
// in code; every value has a development default where one is safe.
type Config struct {
	Port string

	// Persistence backend: "sqlite" (local file) or "postgres" (hosted,
	// e.g. a Supabase database over its connection string).
	DBBackend   string
	DBPath      string
	DatabaseURL string

	// AuthUsers is the injected credential allow-list, formatted as
	// semicolon-separated "email:name:bcryptHash:totpSecret" records.
	AuthUsers string
	// TOTPBypassCode, when non-empty, is accepted in place of a TOTP code.
	// Disabled by default; meant for test configurations only.
	TOTPBypassCode string

	GoogleCalendarEnabled bool
	GoogleClientID        string
	GoogleClientSecret    string
	GoogleRedirectURI     string
	CalendarTimezone      string

	NotionAPIKey       string
	NotionCRMDBID      string
	NotionProjectsDBID string
	NotionTasksDBID    string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		DBBackend:   getEnv("DB_BACKEND", "sqlite"),
		DBPath:      getEnv("DB_PATH", "data.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		AuthUsers:      os.Getenv("AUTH_USERS"),
		TOTPBypassCode: os.Getenv("TOTP_BYPASS_CODE"),

		GoogleCalendarEnabled: os.Getenv("GOOGLE_CALENDAR_ENABLED") == "true",
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:     getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/api/auth/google/callback"),
		CalendarTimezone:      getEnv("CALENDAR_TIMEZONE", "Europe/Paris"),

		NotionAPIKey:       os.Getenv("NOTION_API_KEY"),
		NotionCRMDBID:      os.Getenv("NOTION_CRM_DB_ID"),
		NotionProjectsDBID: os.Getenv("NOTION_PROJECTS_DB_ID"),
		NotionTasksDBID:    os.Getenv("NOTION_TASKS_DB_ID"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
