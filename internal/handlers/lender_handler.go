package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"pos-backend/internal/models"
	"pos-backend/internal/services"

	"github.com/gorilla/mux"
)

type LenderHandler struct {
	Service *services.LenderService
}

func NewLenderHandler(s *services.LenderService) *LenderHandler {
	return &LenderHandler{Service: s}
}

func (h *LenderHandler) CreateLender(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lender, err := h.Service.CreateLender(context.Background(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lender)
}

func (h *LenderHandler) GetLender(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	lender, err := h.Service.GetLender(context.Background(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lender)
}

func (h *LenderHandler) ListLenders(w http.ResponseWriter, r *http.Request) {
	lenders, err := h.Service.ListLenders(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lenders)
}

// RecordBorrowing opens a borrowing instance against a lender
func (h *LenderHandler) RecordBorrowing(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	var req models.BorrowingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.LenderID = id

	instance, err := h.Service.RecordBorrowing(context.Background(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(instance)
}

func (h *LenderHandler) ListBorrowings(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	instances, err := h.Service.ListBorrowings(context.Background(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(instances)
}

// RecordRepayment settles part of a borrowing instance
func (h *LenderHandler) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	var req models.RepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.RecordRepayment(context.Background(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

func (h *LenderHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	payments, err := h.Service.ListRepayments(context.Background(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}
