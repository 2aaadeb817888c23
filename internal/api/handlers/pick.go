package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/jarnr/preconceive/internal/api/response"
	"github.com/jarnr/preconceive/internal/picker"
)

// PickHandler handles random deck pick requests.
type PickHandler struct {
	service *picker.Service
}

// NewPickHandler creates a new PickHandler.
func NewPickHandler(service *picker.Service) *PickHandler {
	return &PickHandler{service: service}
}

// Pick returns one randomly chosen deck as {url, title, image, colors}.
func (h *PickHandler) Pick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := picker.Request{
		Owner:  q.Get("username"),
		Filter: q.Get("filter_type"),
		Colors: q.Get("colors"),
	}

	result, err := h.service.Pick(r.Context(), req)
	if err != nil {
		writePickError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// writePickError maps the pipeline's error taxonomy onto HTTP statuses:
// validation 400, empty catalog 404, missing id 500, anything else is an
// upstream failure and reports 502.
func writePickError(w http.ResponseWriter, err error) {
	var verr *picker.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, verr)
	case errors.Is(err, picker.ErrEmptyCatalog):
		response.NotFound(w, err)
	case errors.Is(err, picker.ErrMissingID):
		log.Printf("pick: internal invariant violated: %v", err)
		response.InternalError(w, err)
	default:
		log.Printf("pick: upstream failure: %v", err)
		response.BadGateway(w, err)
	}
}
