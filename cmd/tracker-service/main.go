package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplyonchain/tracker/internal/config"
	httpAPI "github.com/supplyonchain/tracker/internal/http"
	"github.com/supplyonchain/tracker/internal/http/controller"
	"github.com/supplyonchain/tracker/internal/ledger"
	"github.com/supplyonchain/tracker/internal/logger"
	"github.com/supplyonchain/tracker/internal/metrics"
	"github.com/supplyonchain/tracker/internal/repository/sql"
	"github.com/supplyonchain/tracker/internal/service"
	sqspkg "github.com/supplyonchain/tracker/internal/sqs"
	"github.com/supplyonchain/tracker/internal/store"
)

const outboxInterval = 2 * time.Second

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Outbox database
	db, err := sql.StartDB(conf.Database)
	handleErr("starting database", err)
	eventRepository := sql.NewEventRepository(db)

	// Metadata document store
	metadataStore, err := store.Connect(ctx, conf.Mongo.URI, conf.Mongo.Database)
	handleErr("connecting to mongodb", err)
	defer func() {
		if err := metadataStore.Close(context.Background()); err != nil {
			log.Printf("error while closing mongodb connection: %v", err)
		}
	}()

	// Supply-chain ledger
	ledgerClient, err := ledger.Dial(ctx, conf.Ethereum.RPCURL, conf.Ethereum.ContractAddress,
		conf.Ethereum.PrivateKey, conf.Ethereum.ChainID)
	handleErr("connecting to the ledger", err)

	// SQS publisher for the outbox pipeline
	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("loading AWS config", err)
	sqsPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)

	// Services
	productService := service.NewProductService(metadataStore, eventRepository)
	trackingService := service.NewTrackingService(ledgerClient, metadataStore)
	chainService := service.NewChainService(ledgerClient, metadataStore, eventRepository)

	// Drain pending outbox events into the notification queue
	outboxWorker := service.NewOutboxWorker(eventRepository, sqsPublisher, outboxInterval)
	go outboxWorker.Start(ctx)

	// Start HTTP server
	ctr := controller.New(conf)
	productCtr := controller.NewProductController(productService)
	trackingCtr := controller.NewTrackingController(trackingService, chainService)
	httpServer := gin.New()
	httpServer = httpAPI.InitRouter(conf, httpServer, ctr, productCtr, trackingCtr)

	go func() {
		if err := httpServer.Run(":" + conf.HTTPServer.Port); err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	// Start metrics server
	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	cancel()
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
