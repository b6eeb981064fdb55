package api

// Config holds server configuration.
type Config struct {
	Port           int
	DataDir        string   // Directory holding the translation manifest and sources
	AllowedOrigins []string // CORS allowed origins (empty = allow all)
}
