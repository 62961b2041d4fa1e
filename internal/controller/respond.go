package controller

import (
	"net/http"

	"github.com/go-chi/render"
)

// Envelope is the response wrapper shared by every endpoint, matching what
// the admin UI expects: {"status":"ok"|"error","data":...,"message":...}.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(w http.ResponseWriter, r *http.Request, code int, data interface{}, message string) {
	render.Status(r, code)
	render.JSON(w, r, Envelope{Status: "ok", Data: data, Message: message})
}

func respondErr(w http.ResponseWriter, r *http.Request, code int, message string) {
	render.Status(r, code)
	render.JSON(w, r, Envelope{Status: "error", Message: message})
}
