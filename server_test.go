package main

import (
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerRoutes(r)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"POST /api/v1/auth/signin",
		"PUT /api/v1/users/:id/active",
		"PUT /api/v1/customers/:id/active",
		"PUT /api/v1/product-categories/:id/active",
		"PUT /api/v1/shipments/:id/status",
		"PUT /api/v1/invoices/:id/status",
		"PUT /api/v1/quotes/:id/status",
		"GET /api/v1/shipments/:id/invoice",
		"GET /api/v1/reports/receivable-aging",
		"GET /api/v1/reports/exports/:resource/excel",
		"GET /api/v1/reports/exports/:resource/csv",
	}
	for _, route := range want {
		if !registered[route] {
			t.Fatalf("route %q not registered", route)
		}
	}
}
