package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/olist-agent-poc/server/internal/agent/conversations"
	"github.com/olist-agent-poc/server/internal/agent/handlers"
	"github.com/olist-agent-poc/server/internal/agent/model"
	"github.com/olist-agent-poc/server/internal/agent/repo"
	"github.com/olist-agent-poc/server/internal/agent/router"
	"github.com/olist-agent-poc/server/internal/core"
	errx "github.com/olist-agent-poc/server/internal/core/error"
	"github.com/olist-agent-poc/server/internal/llm"
	"github.com/olist-agent-poc/server/internal/search"
	"github.com/olist-agent-poc/server/internal/store"
	logx "github.com/olist-agent-poc/server/pkg/logger"
	pkgmysql "github.com/olist-agent-poc/server/pkg/mysql"
	pkgredis "github.com/olist-agent-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the agent, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config
	MySQL pkgmysql.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Router       model.RouterModelConfig
	Answer       model.AnswerModelConfig
	Conversation model.ConversationConfig
	Analysis     model.AnalysisConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	db, err := cfg.MySQL.New()
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer db.Close()

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", cfg.Conversation.TTL, err)
	}

	clients, err := llm.NewGeminiClients(ctx, llm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Router:  cfg.Router,
		Answer:  cfg.Answer,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini clients: %v", err)
	}

	olist := store.New(db)
	manager := conversations.NewManager(
		repo.NewRedisConversationRepository(rdb, ttl, cfg.Conversation.MaxTurns),
		cfg.Conversation,
	)

	registry := handlers.NewRegistry(
		handlers.NewSQLAnalyst(clients.Answer, olist, cfg.Analysis),
		handlers.NewWebSearch(clients.Answer, search.NewDuckDuckGo(), cfg.Analysis),
		handlers.NewPlotMap(olist, cfg.Analysis),
		handlers.NewGeneralChat(clients.Answer),
	)
	agent := router.New(clients.Router, registry)

	conversationID := uuid.NewString()
	fmt.Println("E-commerce data agent. Ask about the Olist dataset (ctrl-d to exit).")

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			fmt.Print("> ")
			continue
		}

		runTurn(ctx, agent, manager, conversationID, message)
		fmt.Print("> ")
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed reading input: %v", err)
	}
	fmt.Println()
}

// runTurn processes one user message to completion: append the user turn,
// route, render, append the assistant turn. Errors surface as plain text in
// place of the answer; the turn fails without corrupting conversation state.
func runTurn(ctx context.Context, agent *router.Router, manager *conversations.Manager, conversationID, message string) {
	if err := manager.AppendUser(ctx, conversationID, message); err != nil {
		logx.Error().Err(err).Msg("failed to record user turn")
		fmt.Println(errx.UserMessage(err))
		return
	}

	history, err := manager.RecentHistory(ctx, conversationID)
	if err != nil {
		logx.Error().Err(err).Msg("failed to load history")
		fmt.Println(errx.UserMessage(err))
		return
	}

	answer, err := agent.Respond(ctx, message, history)
	text := ""
	if err != nil {
		logx.Error().Err(err).Msg("turn failed")
		text = errx.UserMessage(err)
	} else {
		text = answer.Text
	}

	fmt.Println(text)
	if err == nil && answer.Table != nil {
		fmt.Printf("[table attachment: %d row(s), columns: %s]\n",
			answer.Table.RowCount, strings.Join(answer.Table.Columns, ", "))
	}
	if err == nil && answer.Points != nil {
		fmt.Printf("[map attachment: %d point(s)]\n", len(answer.Points))
	}

	if err := manager.AppendAssistant(ctx, conversationID, text); err != nil {
		logx.Error().Err(err).Msg("failed to record assistant turn")
	}
}
