package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/quarry/handlers"
	"p9e.in/quarry/middleware"
)

// RegisterRoutes wires up the dashboard and the JSON report API.
func RegisterRoutes(dashboard *handlers.Dashboard, api *handlers.ReportAPI, export *handlers.ReportExport) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestLogger)

	// The dashboard is a single route: GET renders, POST submits one day's
	// readings and redirects back.
	r.HandleFunc("/", dashboard.Show).Methods("GET")
	r.HandleFunc("/", dashboard.Submit).Methods("POST")

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/reports", api.List).Methods("GET")
	v1.HandleFunc("/reports", api.Create).Methods("POST")
	v1.HandleFunc("/reports/batch", api.Batch).Methods("POST")
	v1.HandleFunc("/reports/stats", api.Stats).Methods("GET")
	v1.HandleFunc("/reports/export/excel", export.Excel).Methods("GET")
	v1.HandleFunc("/reports/export/csv", export.CSV).Methods("GET")
	v1.HandleFunc("/reports/{id}", api.Get).Methods("GET")

	return r
}
