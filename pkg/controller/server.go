package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Seann-Moser/pca9685/pkg/pca9685"
)

type frequencyRequest struct {
	Hz float64 `json:"hz"`
}

type channelRequest struct {
	Channel int    `json:"channel"`
	On      uint16 `json:"on"`
	Off     uint16 `json:"off"`
}

// Handler returns the HTTP API for c.
func (c *Controller) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/get", c.handleStatus)
	mux.HandleFunc("/api/setup", post(func(r *http.Request) error { return c.Setup() }))
	mux.HandleFunc("/api/off", post(func(r *http.Request) error { return c.Off() }))
	mux.HandleFunc("/api/frequency", post(func(r *http.Request) error {
		var req frequencyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return badRequest{err}
		}
		return c.SetFrequency(req.Hz)
	}))
	mux.HandleFunc("/api/channel", post(func(r *http.Request) error {
		var req channelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return badRequest{err}
		}
		return c.WriteChannel(req.Channel, req.On, req.Off)
	}))
	mux.HandleFunc("/api/all", post(func(r *http.Request) error {
		var req channelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return badRequest{err}
		}
		return c.WriteAll(req.On, req.Off)
	}))
	return mux
}

// StartServer serves the API on addr until ctx is done.
func (c *Controller) StartServer(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: c.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("server running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (c *Controller) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := c.Status()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

type badRequest struct{ error }

func post(fn func(*http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := fn(r); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var br badRequest
	code := http.StatusBadGateway
	switch {
	case errors.As(err, &br), errors.Is(err, pca9685.ErrInvalidArgument):
		code = http.StatusBadRequest
	case errors.Is(err, pca9685.ErrClosed):
		code = http.StatusServiceUnavailable
	}
	if code != http.StatusBadRequest {
		log.Error().Err(err).Msg("device request failed")
	}
	http.Error(w, err.Error(), code)
}
