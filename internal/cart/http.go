package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"RocketCart/pkg/kit"
)

const maxUpdateBody = 4 << 10

type Server struct {
	Cart *Store
	Log  *zap.Logger
}

type updateReq struct {
	Amount int `json:"amount"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Cart.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/cart", s.list)
	r.Post("/cart/{productID}", s.add)
	r.Delete("/cart/{productID}", s.remove)
	r.Put("/cart/{productID}", s.update)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items())
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := s.Cart.AddProduct(r.Context(), productID); err != nil {
		s.writeMutationError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items())
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := s.Cart.RemoveProduct(r.Context(), productID); err != nil {
		s.writeMutationError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items())
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	req, err := decodeUpdateRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.Cart.UpdateProductAmount(r.Context(), productID, req.Amount); err != nil {
		s.writeMutationError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Cart.Items())
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func decodeUpdateRequest(w http.ResponseWriter, r *http.Request) (updateReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpdateBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req updateReq
	if err := dec.Decode(&req); err != nil {
		return updateReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return updateReq{}, errors.New("extra data after json object")
	}

	return req, nil
}

func (s *Server) writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrStockExceeded):
		kit.WriteError(w, r, http.StatusConflict, MsgStockExceeded, nil)
	case errors.Is(err, ErrNotInCart):
		kit.WriteError(w, r, http.StatusNotFound, "not in cart", nil)
	case errors.Is(err, ErrLookupNotFound):
		kit.WriteError(w, r, http.StatusBadRequest, "unknown product", nil)
	case errors.Is(err, ErrLookupUnavailable):
		kit.WriteError(w, r, http.StatusServiceUnavailable, "stock service unavailable", nil)
	case errors.Is(err, ErrLookupBadStatus):
		kit.WriteError(w, r, http.StatusBadGateway, "stock service error", nil)
	default:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
