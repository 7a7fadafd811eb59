package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	admindomain "github.com/dwikikusuma/storefront/internal/admin/domain"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/gateway"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

type api struct {
	gw    *gateway.Gateway
	ready func(ctx context.Context) error
	log   *slog.Logger
}

func newAPI(gw *gateway.Gateway, ready func(ctx context.Context) error, log *slog.Logger) *api {
	return &api{gw: gw, ready: ready, log: log}
}

func (a *api) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", a.readyz)

	mux.HandleFunc("GET /v1/products", a.listProducts)
	mux.HandleFunc("POST /v1/products", a.createProduct)
	mux.HandleFunc("GET /v1/products/{id}", a.getProduct)
	mux.HandleFunc("PUT /v1/products/{id}", a.updateProduct)
	mux.HandleFunc("DELETE /v1/products/{id}", a.deleteProduct)

	mux.HandleFunc("GET /v1/orders", a.listOrders)
	mux.HandleFunc("POST /v1/orders", a.createOrder)
	mux.HandleFunc("GET /v1/orders/{id}", a.getOrder)

	mux.HandleFunc("POST /v1/admin/verify", a.verifyPin)

	return a.logRequests(mux)
}

func (a *api) readyz(w http.ResponseWriter, r *http.Request) {
	if a.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.ready(ctx); err != nil {
			a.log.Warn("not ready", slog.Any("err", err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p catalogdomain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type productListResponse struct {
	Products   []productResponse `json:"products"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// rawNumber accepts a price sent either as a JSON number or a string.
type rawNumber string

func (n *rawNumber) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = rawNumber(s)
		return nil
	}
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		raw = ""
	}
	*n = rawNumber(raw)
	return nil
}

type productRequest struct {
	Name        string    `json:"name"`
	Price       rawNumber `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
}

func (r productRequest) fields() catalogdomain.Fields {
	return catalogdomain.Fields{
		Name:        r.Name,
		Price:       string(r.Price),
		Description: r.Description,
		Image:       r.Image,
	}
}

func (a *api) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		products []catalogdomain.Product
		next     string
		err      error
	)

	if q.Has("q") || q.Has("limit") || q.Has("cursor") {
		limit, _ := strconv.Atoi(q.Get("limit"))
		products, next, err = a.gw.SearchProducts(r.Context(), q.Get("q"), limit, q.Get("cursor"))
	} else {
		products, err = a.gw.ListProducts(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	resp := productListResponse{Products: make([]productResponse, 0, len(products)), NextCursor: next}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.gw.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (a *api) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := a.gw.CreateProduct(r.Context(), req.fields())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

func (a *api) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := a.gw.UpdateProduct(r.Context(), r.PathValue("id"), req.fields())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (a *api) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.gw.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type orderRequest struct {
	FullName   string                  `json:"fullName"`
	Phone      string                  `json:"phone"`
	Address    string                  `json:"address"`
	Email      string                  `json:"email"`
	Products   []orderdomain.OrderItem `json:"products"`
	TotalPrice decimal.Decimal         `json:"totalPrice"`
}

type orderResponse struct {
	ID         string                  `json:"id"`
	FullName   string                  `json:"fullName"`
	Phone      string                  `json:"phone"`
	Address    string                  `json:"address"`
	Email      string                  `json:"email,omitempty"`
	Products   []orderdomain.OrderItem `json:"products"`
	TotalPrice string                  `json:"totalPrice"`
	Status     string                  `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
}

func toOrderResponse(o orderdomain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		FullName:   o.FullName,
		Phone:      o.Phone,
		Address:    o.Address,
		Email:      o.Email,
		Products:   o.Items,
		TotalPrice: o.TotalPrice.StringFixed(2),
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}

func (a *api) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	o, err := a.gw.CreateOrder(r.Context(), orderdomain.CreateOrderRequest{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Address:    req.Address,
		Email:      req.Email,
		Items:      req.Products,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (a *api) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := a.gw.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (a *api) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.gw.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": out})
}

type verifyRequest struct {
	Pin string `json:"pin"`
}

type adminResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a *api) verifyPin(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	admin, err := a.gw.VerifyPin(r.Context(), req.Pin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAdminResponse(admin))
}

func toAdminResponse(u admindomain.AdminUser) adminResponse {
	return adminResponse{ID: u.ID, Name: u.Name}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("body", "malformed JSON")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("took", time.Since(start)),
		)
	})
}
