package handlers

import (
	"net/http"
)

const usage = `nalscan

POST /scan          Annex-B H.264 byte stream in the request body
POST /scan/mpegts   MPEG-TS carrying an H.264 stream in the request body

Both respond with a JSON report of the NAL units found.
`

type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(usage))
}
