// Package info serves the static service endpoints.
package info

import (
	"net/http"

	"github.com/aanand-mishra/student-records/internal/utils/response"
)

const (
	greeting    = "Student Management System API"
	description = "A fully functional API to manage your student performance"
)

// Home handles GET /, doubling as the health check.
func Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteMessage(w, http.StatusOK, greeting)
	}
}

// About handles GET /about.
func About() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteMessage(w, http.StatusOK, description)
	}
}
