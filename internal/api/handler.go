package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bizdash/m/domain"
	"bizdash/m/internal/importer"
	"bizdash/m/internal/ledger"
	"bizdash/m/internal/metrics"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	svc    *ledger.Service
	imp    *importer.Importer
	logger *zap.Logger
}

// New constructs a Handler.
func New(svc *ledger.Service, imp *importer.Importer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, imp: imp, logger: logger}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", h.recordSale)
		r.Get("/", h.listSales)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.setStock)
		r.Get("/", h.listInventory)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.addCustomer)
		r.Get("/", h.listCustomers)
	})

	r.Get("/metrics", h.getMetrics)
	r.Post("/import/{kind}", h.importCSV)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Sales handlers

type saleRequest struct {
	Product          string  `json:"product"`
	Quantity         int64   `json:"quantity"`
	UnitSellingPrice float64 `json:"unit_selling_price"`
	UnitBuyingPrice  float64 `json:"unit_buying_price"`
	CustomerID       int64   `json:"customer_id"`
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Product == "" || req.CustomerID == 0 {
		respondError(w, http.StatusBadRequest, "product and customer_id are required")
		return
	}

	saleID, err := h.svc.RecordSale(req.Product, req.Quantity, req.UnitSellingPrice, req.UnitBuyingPrice, req.CustomerID)
	if err != nil {
		h.respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"sale_id": saleID})
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.ListSales()
	if err != nil {
		h.respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

// Inventory handlers

type stockRequest struct {
	Product     string `json:"product"`
	Stock       int64  `json:"stock"`
	LastUpdated string `json:"last_updated,omitempty"`
}

func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Product == "" {
		respondError(w, http.StatusBadRequest, "product is required")
		return
	}

	var lastUpdated time.Time
	if req.LastUpdated != "" {
		var err error
		lastUpdated, err = time.Parse(domain.TimeLayout, req.LastUpdated)
		if err != nil {
			respondError(w, http.StatusBadRequest, "last_updated must be in YYYY-MM-DD HH:MM:SS format")
			return
		}
	}

	if err := h.svc.SetStock(req.Product, req.Stock, lastUpdated); err != nil {
		h.respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "stock updated"})
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListInventory()
	if err != nil {
		h.respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Customer handlers

type customerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Orders   int64  `json:"orders"`
	IsActive *bool  `json:"is_active"`
}

func (h *Handler) addCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	customerID, err := h.svc.AddCustomer(req.Name, req.Email, req.Orders, isActive)
	if err != nil {
		h.respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"customer_id": customerID})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers()
	if err != nil {
		h.respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// Metrics

func (h *Handler) getMetrics(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.ListSales()
	if err != nil {
		h.respondLedgerError(w, err)
		return
	}
	customers, err := h.svc.ListCustomers()
	if err != nil {
		h.respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, metrics.Compute(sales, customers))
}

// Import

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	kind := importer.Kind(chi.URLParam(r, "kind"))
	report, err := h.imp.ImportCSV(kind, r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Helpers

func (h *Handler) respondLedgerError(w http.ResponseWriter, err error) {
	var insufficient *ledger.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":     insufficient.Error(),
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.Is(err, ledger.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrUnknownCustomer),
		errors.Is(err, ledger.ErrUnknownProduct),
		errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrNegativeStock):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("storage failure", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "storage unavailable")
	}
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
