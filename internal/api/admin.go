package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"go.velora.shop/internal/catalog"
	catalogops "go.velora.shop/internal/catalog/operations"
	"go.velora.shop/internal/common/action"
	"go.velora.shop/internal/magazine"
	magazineops "go.velora.shop/internal/magazine/operations"
	orderops "go.velora.shop/internal/order/operations"
)

// === Products ===

func (s *Server) handleAdminListProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)
	writeResult(w, s.deps.ListProducts.Execute(r.Context(), catalogops.ListProductsQuery{
		Offset: offset,
		Limit:  limit,
		All:    true,
	}))
}

func (s *Server) handleAdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd catalogops.CreateProductCommand
	if !decodeJSON(w, r, &cmd) {
		return
	}
	writeCreated(w, s.deps.CreateProduct.Execute(r.Context(), cmd))
}

func (s *Server) handleAdminGetProduct(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.GetProduct.Execute(r.Context(), catalogops.GetProductQuery{
		Slug:            chi.URLParam(r, "slug"),
		IncludeInactive: true,
	}))
}

func (s *Server) handleAdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SKU          *string                                `json:"sku"`
		Translations map[catalog.Locale]catalog.Translation `json:"translations"`
		PriceCents   *int64                                 `json:"priceCents"`
		Status       *catalog.ProductStatus                 `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	writeResult(w, s.deps.UpdateProduct.Execute(r.Context(), catalogops.UpdateProductCommand{
		ID:           chi.URLParam(r, "productID"),
		SKU:          body.SKU,
		Translations: body.Translations,
		PriceCents:   body.PriceCents,
		Status:       body.Status,
	}))
}

func (s *Server) handleAdminAdjustStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	writeResult(w, s.deps.AdjustStock.Execute(r.Context(), catalogops.AdjustStockCommand{
		ProductID: chi.URLParam(r, "productID"),
		Delta:     body.Delta,
	}))
}

// === Articles ===

func (s *Server) handleAdminListArticles(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)
	writeResult(w, s.deps.ListArticles.Execute(r.Context(), magazineops.ListArticlesQuery{
		Offset: offset,
		Limit:  limit,
		All:    true,
	}))
}

func (s *Server) handleAdminCreateArticle(w http.ResponseWriter, r *http.Request) {
	var cmd magazineops.CreateArticleCommand
	if !decodeJSON(w, r, &cmd) {
		return
	}
	writeCreated(w, s.deps.CreateArticle.Execute(r.Context(), cmd))
}

func (s *Server) handleAdminGetArticle(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.GetArticle.Execute(r.Context(), magazineops.GetArticleQuery{
		Slug:               chi.URLParam(r, "slug"),
		IncludeUnpublished: true,
	}))
}

func (s *Server) handleAdminUpdateArticle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slug         *string                                 `json:"slug"`
		Translations map[catalog.Locale]magazine.Translation `json:"translations"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	writeResult(w, s.deps.UpdateArticle.Execute(r.Context(), magazineops.UpdateArticleCommand{
		ArticleID:    chi.URLParam(r, "articleID"),
		Slug:         body.Slug,
		Translations: body.Translations,
	}))
}

func (s *Server) handleAdminScheduleArticle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PublishAt time.Time `json:"publishAt"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	writeResult(w, s.deps.ScheduleArticle.Execute(r.Context(), magazineops.ScheduleArticleCommand{
		ArticleID: chi.URLParam(r, "articleID"),
		PublishAt: body.PublishAt,
	}))
}

func (s *Server) handleAdminCancelSchedule(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.CancelSchedule.Execute(r.Context(), magazineops.CancelScheduleCommand{
		ArticleID: chi.URLParam(r, "articleID"),
	}))
}

func (s *Server) handleAdminPublishNow(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.PublishNow.Execute(r.Context(), magazineops.PublishNowCommand{
		ArticleID: chi.URLParam(r, "articleID"),
	}))
}

// === Orders ===

func (s *Server) handleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)
	writeResult(w, s.deps.ListOrders.Execute(r.Context(), orderops.ListOrdersQuery{
		Offset: offset,
		Limit:  limit,
	}))
}

func (s *Server) handleAdminGetOrder(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.deps.GetOrder.Execute(r.Context(), orderops.GetOrderQuery{
		OrderID: chi.URLParam(r, "orderID"),
	}))
}

// === Fault log ===

func (s *Server) handleAdminFaultLog(w http.ResponseWriter, r *http.Request) {
	if s.deps.Faults == nil {
		writeJSON(w, http.StatusOK, action.OK[any]([]any{}, ""))
		return
	}
	writeJSON(w, http.StatusOK, action.OK(s.deps.Faults.Log(), ""))
}
