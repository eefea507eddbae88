// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"mcp-menu-scan/internal/currency"
	"mcp-menu-scan/internal/scoring"
	"mcp-menu-scan/internal/storage"
)

type Config struct {
	Host         string
	Port         int
	DBPath       string
	WeightsPath  string
	RatesURL     string
	RatesTTL     time.Duration
	HomeCurrency string
}

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

// errInvalidParams marks caller mistakes; they map to 400.
var errInvalidParams = errors.New("invalid parameters")

type MenuScanServer struct {
	httpServer *http.Server
	storage    *storage.SQLiteStorage
	scorer     *scoring.Scorer
	converter  *currency.Converter
	tools      map[string]toolHandler
	logger     *zap.Logger
	config     *Config
	now        func() time.Time
}

func NewMenuScanServer(cfg *Config, logger *zap.Logger) (*MenuScanServer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HomeCurrency == "" {
		cfg.HomeCurrency = "USD"
	}
	if cfg.RatesTTL <= 0 {
		cfg.RatesTTL = time.Hour
	}

	weights, err := scoring.LoadWeights(cfg.WeightsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring weights: %w", err)
	}

	// Initialize database
	stor, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var provider currency.RateProvider
	if cfg.RatesURL != "" {
		provider = currency.NewHTTPRateProvider(cfg.RatesURL)
	}

	s := &MenuScanServer{
		storage:   stor,
		scorer:    scoring.NewScorer(weights),
		converter: currency.NewConverter(provider, currency.NewRateCache(cfg.RatesTTL)),
		logger:    logger,
		config:    cfg,
		now:       time.Now,
	}

	s.registerTools()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the routed HTTP handler, CORS included.
func (s *MenuScanServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHTTP).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

func (s *MenuScanServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *MenuScanServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	start := time.Now()
	result, err := handler(r.Context(), &request)
	log := s.logger.With(zap.String("tool", request.Name), zap.Duration("duration", time.Since(start)))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errInvalidParams) {
			status = http.StatusBadRequest
			log.Warn("tool call rejected", zap.Error(err))
		} else if errors.Is(err, storage.ErrNotFound) {
			status = http.StatusNotFound
			log.Debug("tool call found nothing", zap.Error(err))
		} else {
			log.Error("tool call failed", zap.Error(err))
		}
		http.Error(w, err.Error(), status)
		return
	}
	log.Debug("tool call served")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *MenuScanServer) Start(ctx context.Context) error {
	s.logger.Info("starting menu scan server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *MenuScanServer) Stop() error {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *MenuScanServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
