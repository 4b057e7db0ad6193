// Package mongodb implements the domain repositories on a hosted MongoDB
// database. Documents carry an application-assigned uuid in an "id" field;
// Mongo's own _id is never exposed.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Collection names.
const (
	eventsCollection        = "events"
	eventRequestsCollection = "eventRequests"
	associatesCollection    = "associates"
	adminUsersCollection    = "adminUsers"
)

// Connect opens a client for the given URI and verifies connectivity with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}
