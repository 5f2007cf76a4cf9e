package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"

	"qabum/domain/entities"
	"qabum/domain/events"
	"qabum/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type processTransactionRequest struct {
	StoreID           string  `json:"storeId"`
	MerchantID        string  `json:"merchantId"`
	TransactionAmount float64 `json:"transactionAmount"`
}

func (s *Server) handleProcessTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req processTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StoreID == "" || req.MerchantID == "" {
		respondError(w, http.StatusBadRequest, "storeId and merchantId are required")
		return
	}

	result, err := s.processor.ProcessTransaction(r.Context(), req.StoreID, req.MerchantID, req.TransactionAmount)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrStoreNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, entities.ErrInconsistentRateConfig):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.WithError(err).Error("Failed to process transaction")
			respondError(w, http.StatusInternalServerError, "failed to process transaction")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type advanceEligibilityRequest struct {
	StoreID         string  `json:"storeId"`
	MerchantID      string  `json:"merchantId"`
	RequestedAmount float64 `json:"requestedAmount"`
}

func (s *Server) handleAdvanceEligibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req advanceEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StoreID == "" || req.MerchantID == "" {
		respondError(w, http.StatusBadRequest, "storeId and merchantId are required")
		return
	}

	result, err := s.eligibilityService.EvaluateAdvanceRequest(r.Context(), interfaces.EvaluateAdvanceInput{
		StoreID:         req.StoreID,
		MerchantID:      req.MerchantID,
		RequestedAmount: req.RequestedAmount,
	})
	if err != nil {
		log.WithError(err).Error("Failed to evaluate advance request")
		respondError(w, http.StatusInternalServerError, "failed to evaluate advance request")
		return
	}

	if err := s.eventPublisher.Publish(events.AdvanceEvaluatedEvent{
		StoreID:         result.StoreID,
		MerchantID:      result.MerchantID,
		RequestedAmount: result.RequestedAmount,
		ApprovedAmount:  result.ApprovedAmount,
		IsEligible:      result.IsEligible,
		RiskBand:        result.RiskProfile.RiskBand,
	}); err != nil {
		log.WithError(err).Warn("Failed to publish advance evaluated event")
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRiskProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	storeID := r.URL.Query().Get("storeId")
	merchantID := r.URL.Query().Get("merchantId")
	if storeID == "" || merchantID == "" {
		respondError(w, http.StatusBadRequest, "storeId and merchantId are required")
		return
	}

	profile, err := s.riskService.GetMerchantRiskProfile(r.Context(), storeID, merchantID)
	if err != nil {
		log.WithError(err).Error("Failed to derive risk profile")
		respondError(w, http.StatusInternalServerError, "failed to derive risk profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleMerchantSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var snapshot entities.MerchantSalesSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if snapshot.StoreID == "" || snapshot.MerchantID == "" {
		respondError(w, http.StatusBadRequest, "storeId and merchantId are required")
		return
	}
	if snapshot.Sector != "" && !snapshot.Sector.IsKnown() {
		respondError(w, http.StatusBadRequest, "unknown sector")
		return
	}

	if err := s.snapshotStore.Upsert(r.Context(), &snapshot); err != nil {
		log.WithError(err).Error("Failed to store merchant snapshot")
		respondError(w, http.StatusInternalServerError, "failed to store merchant snapshot")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRiskConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := s.configService.GetConfig(r.Context())
		if err != nil {
			log.WithError(err).Error("Failed to load risk config")
			respondError(w, http.StatusInternalServerError, "failed to load risk config")
			return
		}
		respondJSON(w, http.StatusOK, cfg)

	case http.MethodPut:
		if !s.authorized(r) {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		meta := entities.UpdateMeta{
			Actor:     r.Header.Get("X-Qabum-Actor"),
			Reason:    r.Header.Get("X-Qabum-Reason"),
			UserAgent: r.UserAgent(),
			IP:        clientIP(r),
		}
		if meta.Actor == "" {
			meta.Actor = "unknown"
		}

		cfg, validationErrs, err := s.configService.UpdateConfig(r.Context(), input, meta)
		if len(validationErrs) > 0 {
			respondJSON(w, http.StatusBadRequest, errorResponse{
				Error:  "validation failed",
				Errors: validationErrs,
			})
			return
		}
		if err != nil {
			if errors.Is(err, entities.ErrConfigVersionConflict) {
				respondError(w, http.StatusConflict, "configuration was updated concurrently, retry with the latest version")
				return
			}
			log.WithError(err).Error("Failed to update risk config")
			respondError(w, http.StatusInternalServerError, "failed to update risk config")
			return
		}

		respondJSON(w, http.StatusOK, cfg)

	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleConfigAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorized(r) {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 200 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	entries, err := s.configService.GetAuditTrail(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to load audit trail")
		respondError(w, http.StatusInternalServerError, "failed to load audit trail")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// authorized checks the admin token header. A server without a configured
// token rejects every privileged request.
func (s *Server) authorized(r *http.Request) bool {
	if s.adminToken == "" {
		return false
	}
	provided := r.Header.Get(adminTokenHeader)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(s.adminToken)) == 1
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
