package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Tenants
	mux.HandleFunc("/api/tenants", s.handleTenantsRoute) // GET (list), POST (create)

	// API routes - Knowledge base
	mux.HandleFunc("/api/kb/ingest", s.app.KBHandler.IngestHandler) // POST ?tenantId=
	mux.HandleFunc("/api/kb/search", s.app.KBHandler.SearchHandler) // GET ?tenantId=&q=

	// API routes - Channels (simulated WhatsApp webhook)
	mux.HandleFunc("/api/channels/wa/inbound", s.app.InboundHandler.WhatsAppHandler)

	// API routes - Invoices
	mux.HandleFunc("/api/invoices/", s.handleInvoiceRoutes) // /{id}/send, /{id}/mark-paid

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleTenantsRoute routes /api/tenants requests (list and create)
func (s *Server) handleTenantsRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.app.TenantHandler.ListHandler(w, r)
	case "POST":
		s.app.TenantHandler.CreateHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleInvoiceRoutes routes invoice transition requests
func (s *Server) handleInvoiceRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// POST /api/invoices/{id}/send
	if strings.HasSuffix(path, "/send") {
		s.app.InvoiceHandler.SendHandler(w, r)
		return
	}

	// POST or GET /api/invoices/{id}/mark-paid
	if strings.HasSuffix(path, "/mark-paid") {
		s.app.InvoiceHandler.MarkPaidHandler(w, r)
		return
	}

	http.Error(w, "Not found", http.StatusNotFound)
}
