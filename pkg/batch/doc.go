// Package batch provides concurrent fixed-size batching for bulk geofence
// mutations.
//
// Amazon Location accepts at most 10 geofences per BatchPutGeofence or
// BatchDeleteGeofence call. Execute splits an arbitrarily large input into
// consecutive chunks, dispatches one call per chunk concurrently and folds the
// per-chunk partial results into a single geo.BatchResult.
//
// Example usage:
//
//	res, err := batch.Execute(ctx, batch.Config{Operation: "BatchPutGeofence"},
//		inputs,
//		func(in geo.GeofenceInput) string { return in.GeofenceID },
//		func(ctx context.Context, chunk []geo.GeofenceInput) (geo.SaveGeofencesResult, error) {
//			return putChunk(ctx, chunk)
//		})
//
// The executor:
//   - Rejects empty input before dispatching anything
//   - Starts one goroutine per chunk, with no concurrency limit
//   - Lets every chunk run to completion, independent of its siblings
//   - Records every item of a failed chunk as an APIConnectionError entry
//   - Returns once the slowest chunk has resolved
package batch
