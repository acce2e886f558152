package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	cartops "go.velora.shop/internal/cart/operations"
	"go.velora.shop/internal/catalog"
	catalogops "go.velora.shop/internal/catalog/operations"
	magazineops "go.velora.shop/internal/magazine/operations"
)

// cartCookieName stores the visitor's cart id
const cartCookieName = "VELORA_CART"

func pageParams(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func localeParam(r *http.Request) catalog.Locale {
	if l := r.URL.Query().Get("locale"); l != "" {
		return catalog.Locale(l)
	}
	return catalog.DefaultLocale
}

// cartID returns the visitor's cart id, or ""
func cartID(r *http.Request) string {
	cookie, err := r.Cookie(cartCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ensureCartID returns the cart id, minting one and setting the cookie
// when the visitor has none yet
func ensureCartID(w http.ResponseWriter, r *http.Request) string {
	if id := cartID(r); id != "" {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// === Catalog ===

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)
	writeResult(w, s.deps.ListProducts.Execute(r.Context(), catalogops.ListProductsQuery{
		Offset: offset,
		Limit:  limit,
	}))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.GetProduct.Execute(r.Context(), catalogops.GetProductQuery{
		Slug: chi.URLParam(r, "slug"),
	}))
}

// === Magazine ===

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)
	writeResult(w, s.deps.ListArticles.Execute(r.Context(), magazineops.ListArticlesQuery{
		Offset: offset,
		Limit:  limit,
	}))
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.GetArticle.Execute(r.Context(), magazineops.GetArticleQuery{
		Slug: chi.URLParam(r, "slug"),
	}))
}

// === Cart ===

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.GetCart.Execute(r.Context(), cartops.GetCartQuery{
		CartID: cartID(r),
	}))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	writeResult(w, s.deps.AddItem.Execute(r.Context(), cartops.AddItemCommand{
		CartID:    ensureCartID(w, r),
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
		Locale:    localeParam(r),
	}))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	writeResult(w, s.deps.UpdateItem.Execute(r.Context(), cartops.UpdateItemCommand{
		CartID:    cartID(r),
		ProductID: chi.URLParam(r, "productID"),
		Quantity:  body.Quantity,
	}))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.ClearCart.Execute(r.Context(), cartops.ClearCartCommand{
		CartID: cartID(r),
	}))
}
