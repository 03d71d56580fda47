// Package server provides the recipe recommendation HTTP API server.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/DakshC17/reciperecommendation/internal/config"
	"github.com/DakshC17/reciperecommendation/internal/history"
	"github.com/DakshC17/reciperecommendation/internal/recipes"
	recipeslack "github.com/DakshC17/reciperecommendation/internal/slack"
	recipetelegram "github.com/DakshC17/reciperecommendation/internal/telegram"
	"github.com/DakshC17/reciperecommendation/llm"
)

// Server is the recipe recommendation HTTP API server.
type Server struct {
	config    *config.Config
	store     *history.Store
	suggester *recipes.Suggester
	router    chi.Router

	slackBot    *recipeslack.Bot    // nil if Slack is not configured
	telegramBot *recipetelegram.Bot // nil if Telegram is not configured
}

// New creates a new Server, selecting the LLM provider from the environment.
func New(cfg *config.Config) (*Server, error) {
	client, err := recipes.NewLLMClientFromEnv()
	if err != nil {
		return nil, err
	}
	return NewWithClient(cfg, client)
}

// NewWithClient creates a new Server with an explicit LLM client.
func NewWithClient(cfg *config.Config, client llm.Client) (*Server, error) {
	store, err := history.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	s := &Server{
		config:    cfg,
		store:     store,
		suggester: recipes.New(client),
	}

	s.router = s.buildRouter()

	// Initialize the Telegram bot if configured.
	if cfg.TelegramEnabled() {
		tgBot, err := recipetelegram.NewBot(cfg.TelegramBotToken, s)
		if err != nil {
			log.Printf("Warning: failed to initialize Telegram bot: %v", err)
		} else {
			s.telegramBot = tgBot
			log.Println("Telegram bot enabled (long polling)")
		}
	}

	// Initialize the Slack bot if configured.
	if cfg.SlackEnabled() {
		s.slackBot = recipeslack.NewBot(cfg.SlackBotToken, cfg.SlackAppToken, s)
		log.Println("Slack bot enabled (Socket Mode)")
	}

	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and (optionally) the chat bots.
// Blocks until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	if s.slackBot != nil {
		go func() {
			if err := s.slackBot.Run(ctx); err != nil {
				log.Printf("Slack bot error: %v", err)
			}
		}()
	}
	if s.telegramBot != nil {
		go func() {
			if err := s.telegramBot.Run(ctx); err != nil {
				log.Printf("Telegram bot error: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    s.config.ServerAddr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Recipe server listening on %s", s.config.ServerAddr)
	serveErr := srv.ListenAndServe()
	if serveErr == http.ErrServerClosed {
		serveErr = nil
	}
	closeErr := s.store.Close()
	if serveErr != nil {
		return serveErr
	}
	return closeErr
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))

	r.Post("/suggest-recipes", s.handleSuggestRecipes)

	r.Route("/api", func(r chi.Router) {
		r.Get("/suggestions", s.handleListSuggestions)
		r.Get("/suggestions/{id}", s.handleGetSuggestion)
	})

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return r
}

// --- Request/Response types ---

type groceryListRequest struct {
	Items []string `json:"items"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Suggestion execution ---

// Suggest runs one suggestion request and records the outcome in the
// history store. This is the shared entry point used by the HTTP API and
// the chat bots. History writes are best-effort: a storage failure is
// logged and never fails the request.
func (s *Server) Suggest(ctx context.Context, items []string) (*recipes.Suggestion, error) {
	now := time.Now().UTC()
	rec := &history.Record{
		ID:        uuid.New().String()[:8],
		Items:     items,
		Status:    history.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(rec); err != nil {
		log.Printf("Error recording suggestion %s: %v", rec.ID, err)
	}

	sugg, err := s.suggester.Suggest(ctx, items)
	switch {
	case errors.Is(err, recipes.ErrNoFoodItems):
		rec.Status = history.StatusRejected
		rec.Detail = err.Error()
	case err != nil:
		rec.Status = history.StatusError
		rec.Detail = err.Error()
	default:
		rec.Status = history.StatusComplete
		if payload, merr := json.Marshal(sugg); merr == nil {
			rec.Result = payload
		}
	}
	if uerr := s.store.Update(rec); uerr != nil {
		log.Printf("Error updating suggestion %s: %v", rec.ID, uerr)
	}

	return sugg, err
}

// --- Handlers ---

func (s *Server) handleSuggestRecipes(w http.ResponseWriter, r *http.Request) {
	var req groceryListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sugg, err := s.Suggest(r.Context(), req.Items)
	if err != nil {
		// Validation failures pass through unchanged; everything else
		// is a server error carrying the failing call's message.
		if errors.Is(err, recipes.ErrNoFoodItems) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sugg)
}

func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list suggestions")
		log.Printf("Error listing suggestions: %v", err)
		return
	}
	if records == nil {
		records = []*history.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetSuggestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "suggestion not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to load suggestion")
		log.Printf("Error loading suggestion %s: %v", id, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Detail: msg})
}
