package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pos-backend/internal/services"
	"pos-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// Dashboard returns the headline stats for the landing screen
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// DailyReport lists today's sales with their summary
func (h *ReportHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	sales, summary, err := h.Service.DailyReport(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date":    timeutil.FormatWAT(timeutil.Now(), timeutil.DateLayout),
		"sales":   sales,
		"summary": summary,
	})
}

// InventoryCSV streams the stock list as a spreadsheet download
func (h *ReportHandler) InventoryCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.InventoryCSV(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("inventory-%s.csv", timeutil.FormatWAT(timeutil.Now(), timeutil.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(data)
}

// BulkStatements bundles a statement PDF per debtor into one zip
func (h *ReportHandler) BulkStatements(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.BulkStatementsZip(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("statements-%s.zip", timeutil.FormatWAT(timeutil.Now(), timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(data)
}
