package persistence

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb connects to the MongoDB instance holding the dispatch audit
// trail. Callers treat a nil client as "audit disabled".
func NewMongoDb(host, port, user, password, name string) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%s", host, port)
	if user != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s", user, password, host, port)
	}
	if name != "" {
		uri = fmt.Sprintf("%s/%s", uri, name)
	}
	return mongo.Connect(options.Client().ApplyURI(uri))
}
