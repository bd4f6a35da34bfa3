// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/campus-ride/internal/router"
)

// routeNotFound answers requests chi could not route, including a known
// path used with an unsupported method, with the 404 envelope. Existence of
// a route is not revealed through 405 responses.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	_ = router.WriteError(w, http.StatusNotFound, "route not found", nil)
}
