package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings are process-level knobs read from the environment. The YAML file
// says what to monitor; these say how the process runs.
type Settings struct {
	Addr       string   // API bind address
	LogDir     string   // logs directory
	LogLevel   string   // zap level name; anything unparseable means info
	APIKeys    []string // keys accepted on read endpoints; empty disables auth
	AdminKeys  []string // keys required on mutating endpoints
	RatePerMin int      // per-client request allowance; 0 disables limiting
	RateBurst  int
}

func FromEnv() Settings {
	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	ratePerMin := 0
	if v := os.Getenv("RATE_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ratePerMin = n
		}
	}
	rateBurst := 30
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateBurst = n
		}
	}

	return Settings{
		Addr:       addr,
		LogDir:     logDir,
		LogLevel:   os.Getenv("LOG_LEVEL"),
		APIKeys:    splitKeys(os.Getenv("API_KEYS")),
		AdminKeys:  splitKeys(os.Getenv("ADMIN_API_KEYS")),
		RatePerMin: ratePerMin,
		RateBurst:  rateBurst,
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
