package handlers

import (
	"fmt"
	"net/http"
)

// Home is a plaintext liveness line for the root path.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "CareConnect backend is running!")
}

// Healthz reports service readiness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
