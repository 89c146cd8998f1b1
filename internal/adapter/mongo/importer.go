// Package mongo bulk-loads validated artifacts into the backup document
// store. The one exposed operation is "insert this document set verbatim":
// a single unordered insert per collection, with the inserted count as the
// only observable side effect. No retry or transactional semantics.
package mongo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Importer inserts artifact documents into one database.
type Importer struct {
	client *mongodriver.Client
	db     string
	logger *slog.Logger
}

// NewImporter connects to the document store.
func NewImporter(ctx context.Context, uri, database string, logger *slog.Logger) (*Importer, error) {
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	return &Importer{client: client, db: database, logger: logger}, nil
}

// Close disconnects the underlying client.
func (i *Importer) Close(ctx context.Context) error {
	return i.client.Disconnect(ctx)
}

// ImportFile reads a pretty-printed JSON array artifact and bulk-inserts
// its documents, returning how many were inserted. A file holding a single
// object is inserted as one document. skipFirst drops the first array
// element (for artifacts whose first entry is a schema object).
func (i *Importer) ImportFile(ctx context.Context, path, collection string, skipFirst bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read artifact: %w", err)
	}

	coll := i.client.Database(i.db).Collection(collection)

	var docs []any
	if err := json.Unmarshal(data, &docs); err != nil {
		// Not an array: insert the whole document as-is.
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return 0, fmt.Errorf("parse artifact %s: %w", path, err)
		}
		if _, err := coll.InsertOne(ctx, doc); err != nil {
			return 0, fmt.Errorf("insert document: %w", err)
		}
		i.logger.Info("imported artifact", "collection", collection, "documents", 1)
		return 1, nil
	}

	if skipFirst && len(docs) > 0 {
		docs = docs[1:]
	}
	if len(docs) == 0 {
		return 0, nil
	}

	res, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("insert documents: %w", err)
	}

	n := len(res.InsertedIDs)
	i.logger.Info("imported artifact", "collection", collection, "documents", n)
	return n, nil
}
