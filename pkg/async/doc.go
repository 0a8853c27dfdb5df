// Package async runs work off the request goroutine.
//
// Async and WaitAll fan out independent reads and join their results:
//
//	stats := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (Stats, error) {
//		return svc.Stats(ctx)
//	})
//	s, err := stats.Await()
//
// Runner executes fire-and-forget tasks such as deferred cache writes and
// last-login updates. Tasks run on a context detached from the request,
// bounded by a timeout, and their failures are only logged. Wait lets
// graceful shutdown and tests drain pending tasks.
package async
