package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"qabum/application"
	"qabum/domain/entities"
	"qabum/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const adminTokenHeader = "X-Qabum-Admin-Token"

// SnapshotStore accepts merchant snapshot writes from upstream data feeds
type SnapshotStore interface {
	Upsert(ctx context.Context, snapshot *entities.MerchantSalesSnapshot) error
}

// Server exposes the decision engine over HTTP
type Server struct {
	processor          *application.TransactionProcessor
	eligibilityService interfaces.EligibilityService
	riskService        interfaces.RiskService
	configService      interfaces.ConfigService
	snapshotStore      SnapshotStore
	eventPublisher     interfaces.EventPublisher
	adminToken         string

	httpServer *http.Server
}

// NewServer creates a new API server. An empty adminToken denies every
// configuration write.
func NewServer(
	processor *application.TransactionProcessor,
	eligibilityService interfaces.EligibilityService,
	riskService interfaces.RiskService,
	configService interfaces.ConfigService,
	snapshotStore SnapshotStore,
	eventPublisher interfaces.EventPublisher,
	adminToken string,
) *Server {
	return &Server{
		processor:          processor,
		eligibilityService: eligibilityService,
		riskService:        riskService,
		configService:      configService,
		snapshotStore:      snapshotStore,
		eventPublisher:     eventPublisher,
		adminToken:         adminToken,
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/process-transaction", s.handleProcessTransaction)
	mux.HandleFunc("/api/advance-eligibility", s.handleAdvanceEligibility)
	mux.HandleFunc("/api/risk-profile", s.handleRiskProfile)
	mux.HandleFunc("/api/merchant-snapshot", s.handleMerchantSnapshot)
	mux.HandleFunc("/api/risk-config", s.handleRiskConfig)
	mux.HandleFunc("/api/risk-config/audit", s.handleConfigAudit)

	return mux
}

// Start runs the HTTP server on the given port until Shutdown is called
func (s *Server) Start(port int) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.WithField("port", port).Info("Starting API server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
