package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"pos-backend/internal/models"
	"pos-backend/internal/services"
	"pos-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type SaleHandler struct {
	Service *services.SalesService
}

func NewSaleHandler(s *services.SalesService) *SaleHandler {
	return &SaleHandler{Service: s}
}

// CommitSale processes a sale from the till
func (h *SaleHandler) CommitSale(w http.ResponseWriter, r *http.Request) {
	var req models.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.CommitSale(context.Background(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	sale, err := h.Service.GetSale(context.Background(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sale)
}

// ListSales returns the filtered sales history with its summary
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	filter := parseSaleFilter(r)

	sales, summary, err := h.Service.ListSales(context.Background(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sales":   sales,
		"summary": summary,
	})
}

// InvoicePDF streams the invoice for a committed sale
func (h *SaleHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	sale, pdf, err := h.Service.InvoicePDF(context.Background(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", sale.InvoiceID))
	w.Write(pdf)
}

func parseSaleFilter(r *http.Request) models.SaleFilter {
	q := r.URL.Query()
	filter := models.SaleFilter{
		Period:       q.Get("period"),
		CustomerName: q.Get("customer"),
	}

	if v := q.Get("min_amount"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinAmount = &f
		}
	}
	if v := q.Get("max_amount"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxAmount = &f
		}
	}
	if v := q.Get("start_date"); v != "" {
		if t, err := timeutil.ParseInWAT(timeutil.DateLayout, v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := q.Get("end_date"); v != "" {
		if t, err := timeutil.ParseInWAT(timeutil.DateLayout, v); err == nil {
			end := timeutil.EndOfDay(t)
			filter.EndDate = &end
		}
	}
	return filter
}
