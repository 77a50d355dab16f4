package httpapi

import "net/http"

// writeNotImplemented answers endpoints whose backing capability is not wired in.
func writeNotImplemented(w http.ResponseWriter, r *http.Request, what string) {
	writeError(w, r, http.StatusNotImplemented, "NOT_IMPLEMENTED", what+" is not implemented", nil)
}
