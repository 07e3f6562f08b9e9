package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr          string
	AllowOrigins  string
	LogLevel      log.Level
	WSBufferSize  int
	DefaultToMove model.Team
}

// Load reads flags from args, falling back to SENSORCHESS_* environment
// variables and then to defaults.
func Load(args []string) (Config, error) {
	defBuf, err := getenvInt("SENSORCHESS_WS_BUFFER", 1024)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("SENSORCHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", getenv("SENSORCHESS_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	level := fs.String("log-level", getenv("SENSORCHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	buf := fs.Int("ws-buffer", defBuf, "websocket read/write buffer size")
	toMove := fs.String("to-move", getenv("SENSORCHESS_TO_MOVE", "white"), "side to move in new sessions")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	team, err := model.ParseTeam(*toMove)
	if err != nil {
		return Config{}, fmt.Errorf("to-move: %w", err)
	}
	if *buf <= 0 {
		return Config{}, fmt.Errorf("ws-buffer must be positive, got %d", *buf)
	}
	return Config{
		Addr:          *addr,
		AllowOrigins:  *origins,
		LogLevel:      lvl,
		WSBufferSize:  *buf,
		DefaultToMove: team,
	}, nil
}

// Origins splits AllowOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return n, nil
}
