package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Orders   service.OrderServiceInterface
	Feedback service.FeedbackServiceInterface
	Sales    service.SalesServiceInterface
	Logger   *zap.Logger
}

func NewHandler(orderSvc service.OrderServiceInterface, feedbackSvc service.FeedbackServiceInterface, salesSvc service.SalesServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{
		Orders:   orderSvc,
		Feedback: feedbackSvc,
		Sales:    salesSvc,
		Logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/orders", h.openOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/lines", h.addLine).Methods("POST")
	r.HandleFunc("/api/orders/{id}/finalize", h.finalizeOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}/feedback", h.captureOrderFeedback).Methods("POST")

	r.HandleFunc("/api/feedback", h.captureFeedback).Methods("POST")
	r.HandleFunc("/api/feedback", h.getFeedback).Methods("GET")

	r.HandleFunc("/api/sales/top", h.getTopSellers).Methods("GET")
}

type openOrderRequest struct {
	ID         string `json:"order_id"`
	Date       string `json:"date"`
	CustomerID string `json:"customer_id"`
	StaffID    string `json:"staff_id"`
}

type addLineRequest struct {
	MenuID   string `json:"menu_id"`
	Quantity int    `json:"quantity"`
}

type feedbackRequest struct {
	CustomerID string `json:"customer_id"`
	StaffID    string `json:"staff_id"`
	Date       string `json:"date"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type orderFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) openOrder(w http.ResponseWriter, r *http.Request) {
	var req openOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Open(r.Context(), service.OpenOrderInput{
		ID:         req.ID,
		Date:       date,
		CustomerID: req.CustomerID,
		StaffID:    req.StaffID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	reservation, err := h.Orders.AddLine(r.Context(), mux.Vars(r)["id"], req.MenuID, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) finalizeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Finalize(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) captureOrderFeedback(w http.ResponseWriter, r *http.Request) {
	var req orderFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	feedback, err := h.Feedback.CaptureForOrder(r.Context(), mux.Vars(r)["id"], req.Rating, req.Comment)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}

func (h *Handler) captureFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	feedback, err := h.Feedback.Capture(r.Context(), service.FeedbackInput{
		CustomerID: req.CustomerID,
		StaffID:    req.StaffID,
		Date:       date,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedback)
}

func (h *Handler) getFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.Feedback.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (h *Handler) getTopSellers(w http.ResponseWriter, r *http.Request) {
	if h.Sales == nil {
		http.Error(w, "Sales projection is not enabled", http.StatusServiceUnavailable)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	ranks, err := h.Sales.TopSellers(r.Context(), date, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranks)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var shortage *domain.InsufficientStockError
	switch {
	case errors.As(err, &shortage):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":         err.Error(),
			"ingredient_id": shortage.IngredientID,
			"name":          shortage.Name,
			"required":      shortage.Required,
			"available":     shortage.Available,
		})
	case domain.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case domain.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case domain.IsConflict(err):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.Logger.Error("request failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateLayout, value)
}
