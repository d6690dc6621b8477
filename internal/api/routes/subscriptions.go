package routes

import (
	"github.com/go-chi/chi/v5"

	"Chatty/internal/api/handlers/subscriptions"
	"Chatty/internal/api/middleware"
	"Chatty/internal/core/content"
	"Chatty/internal/core/feed"
	"Chatty/internal/core/graph"
)

// RegisterSubscriptionRoutes registers the subscription and feed endpoints.
// Every endpoint requires authentication.
func RegisterSubscriptionRoutes(
	r chi.Router,
	graphService graph.Service,
	feedService feed.Service,
	fetcher content.Fetcher,
	auth *middleware.AuthMiddleware,
) {
	subscribeHandler := subscriptions.NewSubscribeHandler(graphService)
	listHandler := subscriptions.NewListHandler(graphService)
	feedHandler := subscriptions.NewFeedHandler(feedService)
	postsHandler := subscriptions.NewUserPostsHandler(fetcher)

	r.Route("/subscriptions", func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Post("/subscribe/{userID}", subscribeHandler.HandleSubscribe)
		r.Delete("/unsubscribe/{userID}", subscribeHandler.HandleUnsubscribe)

		r.Get("/following", listHandler.HandleFollowing)
		r.Get("/followers", listHandler.HandleFollowers)
		r.Get("/subscriptions", listHandler.HandleSubscriptions)

		r.Get("/feed", feedHandler.HandleFeed)
		r.Get("/users/{userID}/posts", postsHandler.HandleUserPosts)
	})
}
