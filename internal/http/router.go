package http

import (
	"github.com/gin-gonic/gin"

	"github.com/supplyonchain/tracker/internal/config"
	"github.com/supplyonchain/tracker/internal/http/controller"
	"github.com/supplyonchain/tracker/internal/http/middleware"
)

// InitRouter wires every route of the tracker API onto the gin engine.
func InitRouter(
	_ *config.Config,
	server *gin.Engine,
	ctr *controller.Controller,
	productCtr *controller.ProductController,
	trackingCtr *controller.TrackingController,
) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS())
	server.Use(middleware.Logger())

	server.GET("/ping", ctr.Ping)

	api := server.Group("/api")

	// Off-chain metadata endpoints
	products := api.Group("/products")
	{
		products.POST("", productCtr.StoreProduct)
		products.GET("/transaction/:hash", productCtr.ProductByTransaction)
		products.GET("/owner/:address", productCtr.ProductsByOwner)
	}

	// Portfolio reconciliation
	api.GET("/dashboard/:address", trackingCtr.Dashboard)

	// On-chain product endpoints
	chain := api.Group("/chain/products")
	{
		chain.GET("/:id", trackingCtr.ChainProduct)
		chain.POST("", trackingCtr.RegisterProduct)
		chain.POST("/:id/transfer", trackingCtr.TransferProduct)
	}

	// Label scanning
	scan := api.Group("/scan")
	{
		scan.POST("/resolve", trackingCtr.ResolveScan)
		scan.POST("/decode", trackingCtr.DecodeScan)
	}

	return server
}
