package http

import (
	"net/http"

	"pos-backend/internal/handlers"
	"pos-backend/internal/live"
	"pos-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	saleHandler *handlers.SaleHandler,
	customerHandler *handlers.CustomerHandler,
	lenderHandler *handlers.LenderHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	hub *live.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Public price list for the shop-front display board
	r.HandleFunc("/api/catalog", productHandler.PriceList).Methods("GET")

	// Protected API routes - Products and stock
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/search", productHandler.SearchProducts).Methods("GET")
	productsAPI.HandleFunc("/low-stock", productHandler.ListLowStock).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(productHandler.DeleteProduct)).ServeHTTP).Methods("DELETE")

	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("", productHandler.AddStock).Methods("POST")
	stockAPI.HandleFunc("/history", productHandler.StockHistory).Methods("GET")

	// Protected API routes - Sales
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.Use(authMiddleware.Authenticate)
	salesAPI.HandleFunc("", saleHandler.ListSales).Methods("GET")
	salesAPI.HandleFunc("", saleHandler.CommitSale).Methods("POST")
	salesAPI.HandleFunc("/{id}", saleHandler.GetSale).Methods("GET")
	salesAPI.HandleFunc("/{id}/invoice.pdf", saleHandler.InvoicePDF).Methods("GET")

	// Protected API routes - Customers and debt
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/debtors", customerHandler.ListDebtors).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}/payments", customerHandler.RecordPayment).Methods("POST")
	customersAPI.HandleFunc("/{id}/payments", customerHandler.PaymentHistory).Methods("GET")
	customersAPI.HandleFunc("/{id}/purchases", customerHandler.PurchaseHistory).Methods("GET")
	customersAPI.HandleFunc("/{id}/statement.pdf", customerHandler.StatementPDF).Methods("GET")

	// Protected API routes - Lenders and borrowings
	lendersAPI := r.PathPrefix("/api/lenders").Subrouter()
	lendersAPI.Use(authMiddleware.Authenticate)
	lendersAPI.HandleFunc("", lenderHandler.ListLenders).Methods("GET")
	lendersAPI.HandleFunc("", lenderHandler.CreateLender).Methods("POST")
	lendersAPI.HandleFunc("/repayments", lenderHandler.RecordRepayment).Methods("POST")
	lendersAPI.HandleFunc("/{id}", lenderHandler.GetLender).Methods("GET")
	lendersAPI.HandleFunc("/{id}/borrowings", lenderHandler.ListBorrowings).Methods("GET")
	lendersAPI.HandleFunc("/{id}/borrowings", lenderHandler.RecordBorrowing).Methods("POST")
	lendersAPI.HandleFunc("/{id}/repayments", lenderHandler.ListRepayments).Methods("GET")

	// Protected API routes - Dashboard and reports
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", reportHandler.Dashboard).Methods("GET")
	dashboardAPI.HandleFunc("/daily", reportHandler.DailyReport).Methods("GET")

	// WebSocket authenticates via query token on the frontend; the till
	// pushes through Broadcast, dashboards only listen
	r.HandleFunc("/api/dashboard/live", hub.ServeWS)

	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/inventory.csv", reportHandler.InventoryCSV).Methods("GET")
	reportsAPI.HandleFunc("/statements.zip", reportHandler.BulkStatements).Methods("GET")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireRole("admin"))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}/toggle-active", userHandler.ToggleStatus).Methods("PATCH")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
