package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	SESSION_HEADER       = "X-Session-ID"
	FORWARDED_FOR_HEADER = "X-Forwarded-For"

	LAT_QUERY_ARG          = "lat"
	LON_QUERY_ARG          = "lon"
	RADIUS_QUERY_ARG       = "radius"
	EXCLUDE_SOLD_QUERY_ARG = "excludeSold"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// sessionID returns the client session from SESSION_HEADER. A new one is
// minted and echoed back when the client has none yet.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(SESSION_HEADER))
	if id == "" {
		id = uuid.NewString()
		log.Debugf("[Handlers] Minted session %s", id)
	}
	w.Header().Set(SESSION_HEADER, id)
	return id
}

// clientIP prefers the first X-Forwarded-For hop over the peer address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get(FORWARDED_FOR_HEADER); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func parseArgBool(vals url.Values, name string) bool {
	b, _ := strconv.ParseBool(vals.Get(name))
	return b
}

// Ping handles GET /ping
func Ping(w http.ResponseWriter, r *http.Request) {
	log.Debugln("Pinging server")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
