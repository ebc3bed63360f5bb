package moderation

import "github.com/go-chi/chi/v5"

// Routes registers admin moderation routes. The caller mounts these behind
// auth and the admin role check.
func Routes(r chi.Router, handler *Handler) {
	r.Get("/stats", handler.Stats)
	r.Get("/logs", handler.Logs)

	r.Get("/products", handler.ProductQueue)
	r.Post("/products/{id}/approve", handler.ApproveProduct)
	r.Post("/products/{id}/reject", handler.RejectProduct)

	r.Get("/comments", handler.CommentQueue)
	r.Post("/comments/{id}/approve", handler.ApproveComment)
	r.Post("/comments/{id}/reject", handler.RejectComment)

	r.Get("/reports", handler.ReportQueue)
	r.Post("/reports/{id}/resolve", handler.ResolveReport)
	r.Post("/reports/{id}/dismiss", handler.DismissReport)
}
