package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkordes/travel-inquiry/backend/spec"
)

// GetConfigJS handles GET /config.js.
// The inquiry form loads this script before its own code so that
// window.API_ENDPOINT points at this server without a build step.
func (s *Server) GetConfigJS(w http.ResponseWriter, _ *http.Request) {
	// json.Marshal escapes <, > and & so the value cannot close the script.
	endpoint, err := json.Marshal(s.apiEndpoint)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprintf(w, "window.API_ENDPOINT = %s;\n", endpoint)
}

// GetOpenAPI handles GET /openapi.yaml and serves the embedded API description.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
