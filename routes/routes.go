package routes

import (
	"github.com/gin-gonic/gin"

	"precojusto-backend/cart"
	"precojusto-backend/catalog"
	"precojusto-backend/database"
	"precojusto-backend/feedback"
	"precojusto-backend/firebase"
	"precojusto-backend/handlers"
	"precojusto-backend/imaging"
	"precojusto-backend/middleware"
	"precojusto-backend/search"
	"precojusto-backend/suggest"
	"precojusto-backend/utils"
)

// Dependencies are the shared services the handlers are built from.
// Storage and History may be nil.
type Dependencies struct {
	Store       *catalog.Store
	Lists       *cart.Registry
	Sessions    *search.Registry
	Board       *feedback.Board
	Suggester   suggest.Suggester
	History     *database.PriceHistory
	Storage     firebase.StorageClient
	Fetcher     *imaging.Fetcher
	NotifyPhone string

	// WriteLimiter throttles the endpoints that cost money or spam the
	// board: suggestions and feedback submission.
	WriteLimiter *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	utils.UseJSONFieldNames()

	if deps.Suggester == nil {
		deps.Suggester = suggest.Noop{}
	}
	if deps.Fetcher == nil {
		deps.Fetcher = imaging.NewFetcher()
	}

	// Initialize handlers
	productHandler := &handlers.ProductHandler{
		Store:       deps.Store,
		Lists:       deps.Lists,
		History:     deps.History,
		Storage:     deps.Storage,
		Fetcher:     deps.Fetcher,
		NotifyPhone: deps.NotifyPhone,
	}
	categoryHandler := &handlers.CategoryHandler{Store: deps.Store}
	branchHandler := &handlers.BranchHandler{Store: deps.Store}
	priceHandler := &handlers.PriceHandler{Store: deps.Store, NotifyPhone: deps.NotifyPhone}
	dealHandler := &handlers.DealHandler{Store: deps.Store}
	listHandler := &handlers.ListHandler{Store: deps.Store, Lists: deps.Lists}
	searchHandler := &handlers.SearchHandler{Store: deps.Store, Sessions: deps.Sessions}
	feedbackHandler := &handlers.FeedbackHandler{Board: deps.Board}
	suggestionHandler := &handlers.SuggestionHandler{Suggester: deps.Suggester}

	throttle := func(c *gin.Context) { c.Next() }
	if deps.WriteLimiter != nil {
		throttle = deps.WriteLimiter.Middleware()
	}

	// Public routes
	api := r.Group("/api")
	{
		// Catalog
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/products/:id/prices", productHandler.GetProductPrices)
		api.GET("/products/:id/best-price", productHandler.GetBestPrice)
		api.GET("/products/:id/alert-link", productHandler.GetAlertLink)
		api.GET("/products/:id/price-history", productHandler.GetPriceHistory)
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/supermarkets", branchHandler.GetBranches)
		api.GET("/supermarkets/:id", branchHandler.GetBranch)
		api.GET("/supermarkets/:id/family", branchHandler.GetFamily)
		api.GET("/deals", dealHandler.GetDeals)
		api.GET("/suggestions", throttle, suggestionHandler.GetSuggestions)

		// Shopping lists
		api.POST("/lists", listHandler.CreateList)
		api.GET("/lists/:id", listHandler.GetList)
		api.POST("/lists/:id/items", listHandler.AddItem)
		api.PATCH("/lists/:id/items/:productId", listHandler.UpdateQuantity)
		api.DELETE("/lists/:id/items/:productId", listHandler.RemoveItem)
		api.GET("/lists/:id/totals", listHandler.GetTotals)
		api.GET("/lists/:id/receipt/:supermarketId", listHandler.GetReceipt)

		// Search boxes
		api.POST("/search/sessions", searchHandler.CreateSession)
		api.GET("/search/sessions/:id", searchHandler.GetSession)
		api.PUT("/search/sessions/:id", searchHandler.UpdateInput)
		api.DELETE("/search/sessions/:id", searchHandler.DeleteSession)
		api.GET("/search/sessions/:id/stream", searchHandler.StreamSession)

		// Feedback board
		api.GET("/feedback", feedbackHandler.GetFeedback)
		api.POST("/feedback", throttle, feedbackHandler.SubmitFeedback)
		api.POST("/feedback/:id/like", feedbackHandler.LikeFeedback)
	}

	// Admin routes
	admin := api.Group("/admin")
	{
		// Product management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.POST("/products/:id/image", productHandler.UploadProductImage)

		// Prices and stock
		admin.PUT("/products/:id/price", priceHandler.SetPrice)
		admin.POST("/products/:id/stock", priceHandler.AdjustStock)
		admin.POST("/products/:id/offer-link", priceHandler.OfferLink)

		// Supermarket management
		admin.POST("/supermarkets", branchHandler.CreateBranch)
		admin.PUT("/supermarkets/:id", branchHandler.UpdateBranch)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
