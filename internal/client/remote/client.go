// Package remote talks to the per-user collection document in object
// storage. The whole collection travels as a single JSON document, so
// the interface is deliberately small: fetch it, replace it.
package remote

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
)

type Client interface {
	// Fetch returns the user's collection document, or (nil, nil) when
	// no document has been uploaded yet.
	Fetch(ctx context.Context, userID string) (*models.CollectionDocument, error)
	// Replace atomically overwrites the user's document.
	Replace(ctx context.Context, userID string, doc *models.CollectionDocument) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
