package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

// ParsePathID reads a chi URL parameter holding a positive integer id.
func ParsePathID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid path parameter").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
