package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/commonModels"
	"github.com/avashisht/paperbase/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQdrantClient(ctx context.Context) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			initCacheCollection(ctx, qdrantInstance)
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: qdrantInstance,
	}
}

func newClient() *qdrant.Client {

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(context.Background(), client, config.PapersCollection)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", config.PapersCollection, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

// pointID maps a chunk id onto Qdrant's UUID id space. SHA-1-derived UUIDs
// keep the mapping deterministic, so re-ingestion overwrites rather than
// duplicates points.
func pointID(chunkId string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkId)).String()
}

func (db *ClientHolder) Search(ctx context.Context, vectorFloat []float32, limit uint64) ([]commonModels.Match, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.PapersCollection,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	matches := make([]commonModels.Match, 0, len(result))
	for _, hit := range result {
		matches = append(matches, commonModels.Match{
			Text: hit.Payload["content"].GetStringValue(),
			Metadata: commonModels.ChunkMetadata{
				Source:     hit.Payload["source"].GetStringValue(),
				Title:      hit.Payload["title"].GetStringValue(),
				Section:    hit.Payload["section"].GetStringValue(),
				SourceType: hit.Payload["source_type"].GetStringValue(),
				ChunkIndex: int(hit.Payload["chunk_index"].GetIntegerValue()),
			},
			// Qdrant reports cosine similarity; the rest of the system
			// speaks cosine distance.
			Distance: 1 - float64(hit.Score),
		})
	}

	loggr.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (db *ClientHolder) CreateCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, collectionName string, records []commonModels.ChunkRecord, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("mismatch: got %d records but %d vectors", len(records), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(records))

	for i, record := range records {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(record.ChunkId)),
			Vectors: qdrant.NewVectors(vectors[i]...),

			Payload: qdrant.NewValueMap(map[string]any{
				"content":     record.Text,
				"chunk_id":    record.ChunkId,
				"source":      record.Metadata.Source,
				"title":       record.Metadata.Title,
				"section":     record.Metadata.Section,
				"source_type": record.Metadata.SourceType,
				"chunk_index": record.Metadata.ChunkIndex,
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}

	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
