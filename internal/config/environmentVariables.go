package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//TODO:this will differ based on the embedding provider
	EmbeddingOutputDimensionality int32 = 1536
	ReferenceCollectionPrefix           = "compliance-ref-"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//upper bound for one run - reference ingest plus every candidate document
	ReviewJobTimeout = 10 * time.Minute

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second
	RetrievalTopK           = 4

	//reference chunking
	ChunkSize    = 800
	ChunkOverlap = 150

	//llm
	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"

	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIModelName      = "gpt-4o-mini"

	ModelTemperature float32 = 0.0
	ModelContext             = "You are a compliance analyst reviewing corporate documents against ADGM regulations. Base every finding on the supplied reference context. If the context does not support a finding, say so instead of inventing one."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore = 0
	RedisRunIndex = 1

	//redis timeouts
	RedisJobStoreTTL       = 24 * time.Hour
	RedisRunIndexMaxLength = 100

	//uploads
	MaxUploadSize = 32 << 20 //32mb

	//annotated output
	ReviewedFilePrefix = "reviewed_"
)

var (
	AuthToken     = os.Getenv("AUTH_TOKEN")
	NoAuthBypass  = AuthToken == ""
	RedisPassword = os.Getenv("REDIS_PASSWORD")

	GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	//which backend implements the reviewer
	LLMProvider = getEnvOr("LLM_PROVIDER", LLMProviderGemini)
)

func getEnvOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
