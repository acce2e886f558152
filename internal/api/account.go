package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.velora.shop/internal/auth"
	"go.velora.shop/internal/common/action"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/customer"
	customerops "go.velora.shop/internal/customer/operations"
	orderops "go.velora.shop/internal/order/operations"
)

// accountView is the customer shape returned to the client
type accountView struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Locale string `json:"locale,omitempty"`
}

func viewOf(c *customer.Customer) accountView {
	return accountView{
		ID:     c.ID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   string(c.Role),
		Locale: string(c.Locale),
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Locale   string `json:"locale"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	res := s.deps.Register.Execute(r.Context(), customerops.RegisterCommand{
		Email:    body.Email,
		Name:     body.Name,
		Password: body.Password,
		Locale:   body.Locale,
	})

	writeFormResult(w, result.Map(res, func(c *customer.Customer) accountView {
		return viewOf(c)
	}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	res := s.deps.Authenticate.Execute(r.Context(), customerops.AuthenticateCommand{
		Email:    body.Email,
		Password: body.Password,
	})
	if res.IsErr() {
		writeFormResult(w, result.Err[accountView](res.Err()))
		return
	}

	c := res.Value()
	token, err := s.deps.Tokens.IssueSessionToken(c)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, action.Fail[any]("Failed to create session"))
		return
	}
	s.deps.Sessions.SetSession(w, token)

	writeFormResult(w, result.Ok(viewOf(c)))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.deps.Sessions.ClearSession(w)
	writeJSON(w, http.StatusOK, action.OK[any](nil, "Signed out"))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, action.OK(accountView{
		ID:    p.CustomerID,
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
	}, ""))
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	offset, limit := pageParams(r)

	writeResult(w, s.deps.ListOrders.Execute(r.Context(), orderops.ListOrdersQuery{
		CustomerID: p.CustomerID,
		Offset:     offset,
		Limit:      limit,
	}))
}

func (s *Server) handleMyOrder(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	writeResult(w, s.deps.GetOrder.Execute(r.Context(), orderops.GetOrderQuery{
		OrderID:    chi.URLParam(r, "orderID"),
		CustomerID: p.CustomerID,
	}))
}

// === Checkout ===

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	writeCreated(w, s.deps.PlaceOrder.Execute(r.Context(), orderops.PlaceOrderCommand{
		CartID:     cartID(r),
		CustomerID: p.CustomerID,
	}))
}

func (s *Server) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	var body struct {
		MethodToken string `json:"methodToken"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	writeResult(w, s.deps.PayOrder.Execute(r.Context(), orderops.PayOrderCommand{
		OrderID:     chi.URLParam(r, "orderID"),
		CustomerID:  p.CustomerID,
		MethodToken: body.MethodToken,
	}))
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	writeResult(w, s.deps.CancelOrder.Execute(r.Context(), orderops.CancelOrderCommand{
		OrderID:    chi.URLParam(r, "orderID"),
		CustomerID: p.CustomerID,
	}))
}
