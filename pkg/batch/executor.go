package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/Sternrassler/geo-location-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// MaxChunkSize is the provider limit of items per bulk mutation call.
const MaxChunkSize = 10

var (
	chunksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_batch_chunks_total",
		Help: "Total batch chunks dispatched by operation and outcome",
	}, []string{"operation", "outcome"})

	itemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_batch_items_total",
		Help: "Total batch items by operation and outcome",
	}, []string{"operation", "outcome"})
)

// Config holds executor configuration.
type Config struct {
	// Operation names the provider call, used for logs and metrics.
	Operation string

	// ChunkSize is the maximum number of items per call (default: MaxChunkSize).
	ChunkSize int

	// Logger defaults to the "batch" component logger.
	Logger *zerolog.Logger
}

// DispatchFunc submits one chunk and returns the provider's per-item outcome.
// A non-nil error means the whole chunk failed; wrap local failures with
// LocalError.
type DispatchFunc[T, S any] func(ctx context.Context, chunk []T) (geo.BatchResult[S], error)

// localError marks a chunk failure that happened outside the provider call.
type localError struct {
	err error
}

func (e *localError) Error() string { return e.err.Error() }
func (e *localError) Unwrap() error { return e.err }

// LocalError marks err as a local failure of a chunk, such as a request that
// could not be encoded or a response that could not be decoded. Items of such
// a chunk are recorded with geo.CodeSerializationError instead of
// geo.CodeAPIConnectionError.
func LocalError(err error) error {
	if err == nil {
		return nil
	}
	return &localError{err: err}
}

// chunkErrorCode returns the per-item code recorded for a failed chunk.
func chunkErrorCode(err error) string {
	var local *localError
	if errors.As(err, &local) {
		return geo.CodeSerializationError
	}
	return geo.CodeAPIConnectionError
}

// chunkResult is the outcome of a single chunk.
type chunkResult[S any] struct {
	partial geo.BatchResult[S]
	err     error
}

// Partition splits items into consecutive chunks of at most size items,
// preserving order. Concatenating the chunks yields items.
func Partition[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = MaxChunkSize
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// Execute partitions items, dispatches every chunk concurrently and merges
// the results. idOf extracts the identifier recorded for items of a failed
// chunk. Chunk calls are detached from ctx cancellation: once dispatched they
// run to completion.
func Execute[T, S any](ctx context.Context, cfg Config, items []T, idOf func(T) string, dispatch DispatchFunc[T, S]) (geo.BatchResult[S], error) {
	if len(items) == 0 {
		return geo.BatchResult[S]{}, &geo.Error{
			Kind:    geo.KindEmptyInput,
			Message: cfg.Operation + ": input array is empty",
		}
	}

	logger := logging.NewLogger(logging.ComponentBatch)
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	start := time.Now()

	chunks := Partition(items, cfg.ChunkSize)
	results := make([]chunkResult[S], len(chunks))

	logger.Debug().
		Str("operation", cfg.Operation).
		Int("items", len(items)).
		Int("chunks", len(chunks)).
		Msg("Dispatching batch chunks")

	detached := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []T) {
			defer wg.Done()
			partial, err := dispatch(detached, chunk)
			results[i] = chunkResult[S]{partial: partial, err: err}
		}(i, chunk)
	}
	wg.Wait()

	var out geo.BatchResult[S]
	for i, res := range results {
		if res.err != nil {
			code := chunkErrorCode(res.err)
			logger.Warn().
				Err(res.err).
				Str("operation", cfg.Operation).
				Int("chunk", i).
				Int("items", len(chunks[i])).
				Str("code", code).
				Msg("Batch chunk failed")

			chunksTotal.WithLabelValues(cfg.Operation, "failed").Inc()
			itemsTotal.WithLabelValues(cfg.Operation, "error").Add(float64(len(chunks[i])))

			for _, item := range chunks[i] {
				out.Errors = append(out.Errors, geo.GeofenceError{
					GeofenceID: idOf(item),
					Error: geo.ErrorDetail{
						Code:    code,
						Message: res.err.Error(),
					},
				})
			}
			continue
		}

		chunksTotal.WithLabelValues(cfg.Operation, "ok").Inc()
		itemsTotal.WithLabelValues(cfg.Operation, "success").Add(float64(len(res.partial.Successes)))
		itemsTotal.WithLabelValues(cfg.Operation, "error").Add(float64(len(res.partial.Errors)))

		out.Successes = append(out.Successes, res.partial.Successes...)
		out.Errors = append(out.Errors, res.partial.Errors...)
	}

	logger.Info().
		Str("operation", cfg.Operation).
		Int("chunks", len(chunks)).
		Int("successes", len(out.Successes)).
		Int("errors", len(out.Errors)).
		Dur("duration", time.Since(start)).
		Msg("Batch complete")

	return out, nil
}
