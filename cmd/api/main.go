package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/data/store"
	jobmodel "github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/internal/handlers"
	"github.com/avashisht/paperbase/internal/job"
	"github.com/avashisht/paperbase/internal/rag"
	"github.com/avashisht/paperbase/internal/rag/embedding/googleEmbedding"
	"github.com/avashisht/paperbase/internal/rag/ingest"
	"github.com/avashisht/paperbase/internal/rag/llm"
	"github.com/avashisht/paperbase/internal/rag/llm/gemini"
	"github.com/avashisht/paperbase/internal/rag/llm/groq"
	"github.com/avashisht/paperbase/internal/rag/vectorDB/qdrantDB"
	"github.com/avashisht/paperbase/internal/server"
	"github.com/avashisht/paperbase/internal/worker"
	"github.com/avashisht/paperbase/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and its stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	redisJobStore := store.GetRedisJobStore(serviceContext)
	redisReportStore := store.GetRedisReportStore(serviceContext)
	if redisJobStore == nil || redisReportStore == nil {
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.ReportStore = store.InitInMemoryReportStore()
	} else {
		serviceConfig.JobStore = redisJobStore
		serviceConfig.ReportStore = redisReportStore
	}
	service := job.InitJobService(serviceConfig)

	vectorDatabase := qdrantDB.GetQdrantClient(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey)
	llmProvider := selectLLMProvider(serviceContext)

	if vectorDatabase == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDatabase != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDatabase, llmProvider, embeddingService, ingest.NewHTTPFetcher(), serviceConfig.ReportStore)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func selectLLMProvider(ctx context.Context) llm.Provider {
	if config.LLMProvider == "gemini" {
		return gemini.GetGeminiClient(ctx, config.GoogleAPIKey, config.GeminiModelName)
	}
	return groq.GetGroqClient(config.GroqAPIKey, config.GroqModelName)
}
