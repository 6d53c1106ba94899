// @title           ADGM Compliance Review API
// @version         1.0
// @description     Reviews corporate .docx documents against ADGM reference material and returns an annotated copy plus a compliance report.
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/data/store"
	jobmodel "github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/handlers"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/job"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/embedding/googleEmbedding"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/llm"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/llm/gemini"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/llm/openaiLLM"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/vectorDB/qdrantDB"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/server"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/worker"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
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

	//init job service, job store and run index
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	jobStore := store.GetRedisJobStore(serviceContext)
	runIndex := store.GetRedisRunIndex(serviceContext)
	if jobStore == nil || runIndex == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.RunIndex = store.InitInMemoryRunIndex()
	} else {
		serviceConfig.JobStore = jobStore
		serviceConfig.RunIndex = runIndex
	}
	service := job.InitJobService(serviceConfig)

	vectorDB := qdrantDB.GetQdrantClient(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey)

	var llmProvider llm.Provider
	switch config.LLMProvider {
	case config.LLMProviderOpenAI:
		llmProvider = openaiLLM.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey)
	default:
		llmProvider = gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey)
	}

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	reviewService := review.NewService(vectorDB, llmProvider, embeddingService)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, reviewService)
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
