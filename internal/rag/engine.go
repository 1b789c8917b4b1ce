package rag

import (
	"context"
	"fmt"
	"strings"

	"docchat-ai/internal/contextutil"
	"docchat-ai/internal/llm"
	"docchat-ai/internal/vectorstore"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks docchat-ai/internal/rag Engine

// Engine provides RAG (Retrieval-Augmented Generation) functionality over the
// ingested document collection.
type Engine interface {
	// Chat answers a question: retrieve, optionally rerank, generate with citations.
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)

	// Search retrieves relevant chunks without generating an answer.
	Search(ctx context.Context, req SearchRequest) ([]Hit, error)

	// Generate runs the pipeline with explicit retrieval and rerank depths.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

// Embedder turns texts into vectors. *llm.EmbeddingsClient implements it.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel generates chat completions. *llm.Client implements it.
type ChatModel interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// noResultsAnswer is returned when retrieval comes back empty.
const noResultsAnswer = "I couldn't find any relevant information in the documents."

const systemPrompt = `You are a helpful assistant that answers questions based on the provided context.
Use ONLY the context below to answer. If the answer is not in the context, say "I don't have enough information to answer that."

CITATION RULES:
- Each context chunk is labeled [1], [2], etc. with its source document and page number(s).
- When you use information from a chunk, cite it inline like [1], [2], etc.
- At the end of your answer, add a "References" section listing each cited source with page numbers.
- Format: [n] source_filename, p.X

Example:
Apple's Q4 revenue was $94.9 billion [1], with Services reaching a record $25 billion [2].

References:
[1] Apple_Q24.pdf, p.3
[2] Apple_Q24.pdf, p.5`

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	llmClient   ChatModel
	reranker    Reranker
	topK        int
	topN        int
}

// NewEngine creates a new RAG engine. topK is the default retrieval depth and
// topN the default rerank depth; requests may override both.
func NewEngine(
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	llmClient ChatModel,
	reranker Reranker,
	topK, topN int,
) Engine {
	return &ragEngine{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		llmClient:   llmClient,
		reranker:    reranker,
		topK:        topK,
		topN:        topN,
	}
}

// retrieve embeds the query and searches the vector store, restricted to
// chunks of active document versions.
func (e *ragEngine) retrieve(ctx context.Context, query string, k int) ([]Hit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	filters := map[string]any{"is_active": true}
	results, err := e.vectorStore.Search(ctx, e.collection, embeddings[0], k, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, result := range results {
		hit := Hit{
			ID:    result.PointID,
			Score: result.Score,
		}
		if id, ok := result.Meta["record_id"].(string); ok && id != "" {
			hit.ID = id
		}
		hit.ChunkText, _ = result.Meta["chunk_text"].(string)
		hit.Source, _ = result.Meta["source"].(string)
		hit.Pages, _ = result.Meta["pages"].(string)
		hits = append(hits, hit)
	}

	logger.InfoContext(ctx, "vector search completed", "results", len(hits), "k", k)
	return hits, nil
}

// buildContextBlock formats hits into a numbered context string with
// source and page info, one block per citation label.
func buildContextBlock(hits []Hit) string {
	parts := make([]string, 0, len(hits))
	for i, hit := range hits {
		source := hit.Source
		if source == "" {
			source = "unknown"
		}
		pageLabel := ""
		if hit.Pages != "" {
			pageLabel = fmt.Sprintf(", p.%s", hit.Pages)
		}
		parts = append(parts, fmt.Sprintf("[%d] (source: %s%s)\n%s", i+1, source, pageLabel, hit.ChunkText))
	}
	return strings.Join(parts, "\n\n")
}

// generateAnswer sends the context block and question to the LLM.
func (e *ragEngine) generateAnswer(ctx context.Context, question string, hits []Hit) (string, error) {
	contextBlock := buildContextBlock(hits)

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\n---\nQuestion: %s", contextBlock, question)},
	}

	answer, err := e.llmClient.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get LLM response: %w", err)
	}
	return answer, nil
}

// toSources converts hits to citation-labeled sources with truncated text.
func toSources(hits []Hit) []SourceChunk {
	sources := make([]SourceChunk, 0, len(hits))
	for i, hit := range hits {
		text := hit.ChunkText
		if runes := []rune(text); len(runes) > 200 {
			text = string(runes[:200])
		}
		sources = append(sources, SourceChunk{
			ID:        hit.ID,
			Score:     hit.Score,
			Source:    hit.Source,
			Pages:     hit.Pages,
			ChunkText: text + "...",
			Citation:  fmt.Sprintf("[%d]", i+1),
		})
	}
	return sources
}

// Chat runs the full pipeline: retrieve, optionally rerank, generate.
func (e *ragEngine) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "chat started", "question", req.Question, "use_reranker", req.UseReranker)

	retrieved, err := e.retrieve(ctx, req.Question, e.topK)
	if err != nil {
		return ChatResponse{}, err
	}

	chunks := retrieved
	var reranked []Hit
	if req.UseReranker {
		reranked = e.reranker.Rerank(req.Question, retrieved, e.topN)
		chunks = reranked
	}

	if len(chunks) == 0 {
		logger.InfoContext(ctx, "no chunks retrieved")
		return ChatResponse{
			Answer:  noResultsAnswer,
			Sources: []SourceChunk{},
		}, nil
	}

	answer, err := e.generateAnswer(ctx, req.Question, chunks)
	if err != nil {
		return ChatResponse{}, err
	}

	resp := ChatResponse{
		Answer:  answer,
		Sources: toSources(chunks),
	}
	if req.Debug {
		resp.Retrieved = toSources(retrieved)
		if req.UseReranker {
			resp.Reranked = toSources(reranked)
		}
	}

	logger.InfoContext(ctx, "chat completed", "chunks_used", len(chunks), "answer_length", len(answer))
	return resp, nil
}

// Search retrieves (and optionally reranks) without generating.
func (e *ragEngine) Search(ctx context.Context, req SearchRequest) ([]Hit, error) {
	k := req.TopK
	if k <= 0 {
		k = e.topK
	}

	hits, err := e.retrieve(ctx, req.Query, k)
	if err != nil {
		return nil, err
	}

	if req.UseReranker {
		hits = e.reranker.Rerank(req.Query, hits, e.topN)
	}
	return hits, nil
}

// Generate runs the pipeline with explicit depths and reports which stages ran.
func (e *ragEngine) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = e.topK
	}
	topN := req.TopN
	if topN <= 0 {
		topN = e.topN
	}

	retrieved, err := e.retrieve(ctx, req.Question, topK)
	if err != nil {
		return GenerateResponse{}, err
	}

	var chunks []Hit
	var pipeline string
	if req.UseReranker {
		chunks = e.reranker.Rerank(req.Question, retrieved, topN)
		pipeline = "retrieve → rerank → generate"
	} else {
		chunks = retrieved
		if len(chunks) > topN {
			chunks = chunks[:topN]
		}
		pipeline = "retrieve → generate"
	}

	if len(chunks) == 0 {
		return GenerateResponse{
			Question: req.Question,
			Answer:   "No relevant information found in the documents.",
			Sources:  []SourceChunk{},
			Pipeline: pipeline,
		}, nil
	}

	answer, err := e.generateAnswer(ctx, req.Question, chunks)
	if err != nil {
		return GenerateResponse{}, err
	}

	return GenerateResponse{
		Question: req.Question,
		Answer:   answer,
		Sources:  toSources(chunks),
		Pipeline: pipeline,
	}, nil
}
