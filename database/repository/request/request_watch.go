package requestRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Watch opens a change stream on the requests collection. The returned channel
// receives a signal per change (coalesced when the reader lags) and closes when
// ctx ends or the stream fails. Standalone servers without a replica set return an error.
func (r *MongoRequestRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	stream, err := r.coll.Watch(ctx, mongo.Pipeline{}, options.ChangeStream())
	if err != nil {
		return nil, fmt.Errorf("failed to open change stream on %s: %w", collectionName, err)
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer close(signals)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case signals <- struct{}{}:
			default:
			}
		}
	}()
	return signals, nil
}
