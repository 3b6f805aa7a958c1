package handlers

import (
	"net/http"
	"strconv"

	"github.com/wcraske/simpleCalendar/internal/validate"
)

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, validate.Errs{{Field: name, Msg: "must be an integer"}}
	}
	return n, nil
}
