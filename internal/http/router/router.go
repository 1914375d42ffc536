// Package router holds the route table of the API.
package router

import (
	"net/http"

	"github.com/aanand-mishra/student-records/internal/http/handlers/info"
	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/records"
)

// New registers every API route on a fresh ServeMux.
//
// Route table:
//
//	GET    /                → health message
//	GET    /about           → about message
//	GET    /view            → all records keyed by roll_no
//	GET    /student/{id}    → one record
//	GET    /sort            → records ordered by sort_by / order
//	POST   /add             → create a student
//	PUT    /edit/{id}       → partially update a student
//	DELETE /delete/{id}     → delete a student
func New(svc *records.Service) *http.ServeMux {
	router := http.NewServeMux()

	// "{$}" matches "/" exactly; without it "GET /" would catch every path.
	router.HandleFunc("GET /{$}", info.Home())
	router.HandleFunc("GET /about", info.About())

	router.HandleFunc("GET /view", student.GetList(svc))
	router.HandleFunc("GET /student/{id}", student.GetByID(svc))
	router.HandleFunc("GET /sort", student.Sort(svc))
	router.HandleFunc("POST /add", student.New(svc))
	router.HandleFunc("PUT /edit/{id}", student.Update(svc))
	router.HandleFunc("DELETE /delete/{id}", student.Delete(svc))

	return router
}
