package handler

import "net/http"

type statusResponse int

func (s statusResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(int(s))
	return nil
}

// Empty writes 204 No Content.
func Empty() Response { return statusResponse(http.StatusNoContent) }

// Status writes code with no body, e.g. 202 for work that continues after
// the response.
func Status(code int) Response { return statusResponse(code) }
