package http

import (
	"fmt"
	"net/http"
	"time"
)

// RequestTimeout bounds the store calls made for a single request.
var RequestTimeout = 5 * time.Second

// NotificationTimeout bounds the notification sent after a book is finished.
var NotificationTimeout = 2 * time.Second

type ServerConfig struct {
	Port int
}

func NewServer(config ServerConfig, h *BookHandler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", ping)
	mux.HandleFunc("/books", h.books)
	mux.HandleFunc("/books/", h.bookRoutes)

	server := http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &server
}

/* Tests the http server connection.  */
func ping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
