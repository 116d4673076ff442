package controllers

import (
	"net/http"

	"github.com/facilops/facilops/pkg/configuration"
	"github.com/facilops/facilops/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		panic(err)
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	if err := httpapi.WriteError(w, r, status, code, message, configuration.Use().RequestIDHeader); err != nil {
		panic(err)
	}
}
