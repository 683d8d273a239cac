package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)


const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//vector collections
	PapersCollection        = "papers"
	SemanticCacheCollection = "semantic-cache"
	CacheSimilarityCutoff   = 0.97

	EmbeddingOutputDimensionality int32 = 1536

	//worker pool
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	// Web batches embed and fetch many sources, so jobs get a generous cap.
	JobExecutionTimeout = 10 * time.Minute

	//vectorDB
	QdrantHost             = ""
	QdrantPort             = 6333 //http
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//models
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	GroqBaseURL          = "https://api.groq.com/openai/v1"
	GroqModelName        = "llama-3.3-70b-versatile"

	ModelTemperature    float64 = 0.7
	MaxCompletionTokens int64   = 1000

	// The answerer is restricted to the retrieved context; outside knowledge
	// is explicitly forbidden so provenance stays meaningful.
	SystemInstruction = "You are a helpful AI assistant. Your role is to answer questions STRICTLY based on the provided context. " +
		"If the answer is not in the context, say 'I don't have enough information in the provided context to answer that question.' " +
		"Do NOT use your training knowledge. ONLY use the information given in the context below."

	NoContextMessage = "No relevant context found in the database."

	//retrieval and context assembly
	DefaultTopK         = 3
	MaxContextChars     = 30000 //~7500 tokens at 4 chars per token
	ContextSafetyMargin = 200
	PerDocumentCap      = 5000
	SnippetLength       = 300

	//chunking
	PDFChunkChars      = 1500
	WebChunkChars      = 2000
	EmbeddingBatchSize = 100

	//web fetcher
	WebFetchTimeout = 10 * time.Second
	WebUserAgent    = "paperbase-bot/0.1 (+https://github.com/avashisht/paperbase)"

	//pdf page extraction guard
	PageExtractTimeout = 10 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DBs we can use
	RedisJobStore    = 0
	RedisReportStore = 1

	//redis timeouts
	RedisJobStoreTTL    = 24 * time.Hour
	RedisReportStoreTTL = 24 * time.Hour
)

// Secrets and deployment-specific values come from the environment.
var (
	GoogleAPIKey  string
	GroqAPIKey    string
	RedisPassword string
	AuthToken     string
	NoAuthBypass  bool
	LLMProvider   string //"groq" (default) or "gemini"
)

// A .env file must be read before the vars above are populated, so both
// happen in init rather than in var initializers.
func init() {
	_ = godotenv.Load()

	GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	GroqAPIKey = os.Getenv("GROQ_API_KEY")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	AuthToken = os.Getenv("API_AUTH_TOKEN")
	NoAuthBypass = AuthToken == ""
	LLMProvider = os.Getenv("LLM_PROVIDER")
}
