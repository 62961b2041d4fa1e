package controller

import "net/http"

// Home is the unauthenticated health route.
func Home(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, http.StatusOK, nil, "admin backend running")
}

// LoginRequired is the target of the unauthenticated-page redirect.
func LoginRequired(w http.ResponseWriter, r *http.Request) {
	respondErr(w, r, http.StatusUnauthorized, "admin login required")
}
