package googleEmbedding

import (
	"context"
	"time"

	"github.com/avashisht/paperbase/pkg/logger_i"
	"github.com/google/uuid"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))

	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Error("Rate limit hit!", "error", err)
			return true
		}
	}
	return false
}

// batchJobEmbedding submits an async embedding batch job and polls until it
// settles. Only worth the overhead for very large chunk sets.
func (c *client) batchJobEmbedding(ctx context.Context, chunks []string, log *logger_i.Logger) ([][]float32, error) {
	batch := &genai.EmbeddingsBatchJobSource{
		InlinedRequests: &genai.EmbedContentBatch{
			Config:   &genai.EmbedContentConfig{OutputDimensionality: &dimension},
			Contents: getContent(chunks),
		},
	}
	jobName := uuid.New().String()
	log = log.With("batchJobName", jobName, "chunks", len(chunks))

	_, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, batch, &genai.CreateEmbeddingsBatchJobConfig{DisplayName: jobName})
	if err != nil {
		log.Error("Error creating embedding batch job", "error", err.Error())
		return nil, err
	}

	job, err := c.pollForAnswer(ctx, jobName, log)
	if err != nil {
		return nil, err
	}
	return collectBatchVectors(job, log), nil
}

func (c *client) pollForAnswer(ctx context.Context, batchJobName string, log *logger_i.Logger) (*genai.BatchJob, error) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Error("pollForAnswer cancelled", "error:", ctx.Err())
			return nil, ctx.Err()

		case <-ticker.C:
			bJob, err := c.genAi.Batches.Get(ctx, batchJobName, nil)
			if err != nil {
				log.Error("Error getting batch job:", "error", err)
				continue
			}

			switch bJob.State {
			case "JOB_STATE_SUCCEEDED":
				log.Debug("batch job succeeded")
				return bJob, nil
			case "JOB_STATE_FAILED":
				log.Error("batch job failed :", "JOB_STATE_FAILED", bJob.Error.Message)
			case "JOB_STATE_CANCELLED", "JOB_STATE_EXPIRED", "JOB_STATE_PARTIALLY_SUCCEEDED":
				log.Error("batch job failed :", "Premature ending", bJob.State)
				//all other states wait for the job to end or the context to expire
			}
		}
	}
}

func collectBatchVectors(job *genai.BatchJob, log *logger_i.Logger) [][]float32 {
	res := job.Dest.InlinedEmbedContentResponses
	if len(res) == 0 {
		return [][]float32{}
	}
	results := make([][]float32, 0, len(res))

	for _, r := range res {
		if r == nil || r.Error != nil || r.Response == nil || r.Response.Embedding == nil {
			log.Error("Failed result in batch embedding", "error", r)
			results = append(results, nil)
			continue
		}
		results = append(results, r.Response.Embedding.Values)
	}
	return results
}
