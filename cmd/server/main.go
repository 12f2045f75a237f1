package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/ntheocharis/undercover/internal/ai"
	"github.com/ntheocharis/undercover/internal/ai/ollama"
	"github.com/ntheocharis/undercover/internal/ai/openai"
	"github.com/ntheocharis/undercover/internal/config"
	"github.com/ntheocharis/undercover/internal/game"
	"github.com/ntheocharis/undercover/internal/server"
	"github.com/ntheocharis/undercover/internal/ws"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
		configPath  = flag.String("config", "simulation_config.json", "Path to the simulation config file")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`undercover-server - API for running LLM social deduction games

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)
  --config PATH   Simulation config file for word pairs and difficulty

Environment Variables:
  PORT                Port to listen on (default: 8080)
  OPENAI_API_KEY      OpenAI API key (required for OpenAI-backed models)
  OPENAI_BASE_URL     Custom OpenAI API base URL (optional)
  OLLAMA_HOST         Ollama host URL (default: http://localhost:11434)

Endpoints:
  GET  /health             Health check
  POST /api/games          Create and start a game in the background
  GET  /api/games          List all games
  GET  /api/games/:id      Game status and result
  WS   /socket.io          Live event stream (game:watch with a gameId)
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("undercover-server %s\n", version)
		return
	}

	_ = godotenv.Load()

	port := *portFlag
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": version, "time": time.Now().UTC()})
	})

	envCfg := config.FromEnv()
	sim, err := config.LoadSimulation(*configPath)
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("invalid simulation config")
	}

	providers := map[string]ai.Provider{
		"openai": openai.New(envCfg.OpenAIKey, envCfg.OpenAIBaseURL),
		"ollama": ollama.New(envCfg.OllamaHost),
	}

	sock := ws.New()
	io := sock.Mount(r)
	defer io.Close()

	mgr := server.NewManager(providers, sim.WordPairs, game.Difficulty(sim.Tournament.Difficulty), sock)

	type createReq struct {
		Models []game.ModelRef `json:"models"`
	}
	r.POST("/api/games", func(c *gin.Context) {
		var req createReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}
		st, err := mgr.Create(req.Models)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		go mgr.Run(context.Background(), st.ID)
		c.JSON(http.StatusCreated, st)
	})

	r.GET("/api/games", func(c *gin.Context) {
		games := mgr.List()
		c.JSON(http.StatusOK, gin.H{"games": games, "total": len(games)})
	})

	r.GET("/api/games/:id", func(c *gin.Context) {
		st, err := mgr.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "game_not_found"})
			return
		}
		c.JSON(http.StatusOK, st)
	})

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
