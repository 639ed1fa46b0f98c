// Package store persists decompositions as durable assets.
//
// The cache package keeps short-lived entries; a Store keeps decompositions
// that downstream renderers fetch by hash long after they were computed.
// [MongoStore] is the production backend, [MemoryStore] serves tests and
// single-process deployments.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/wirechain/pkg/topology"
)

// Asset is a stored decomposition.
type Asset struct {
	Hash        string    `json:"hash" bson:"_id"`
	VertexCount int       `json:"vertex_count" bson:"vertex_count"`
	EdgeCount   int       `json:"edge_count" bson:"edge_count"`
	Indices     []int     `json:"vertex_indices" bson:"vertex_indices"`
	Offsets     []int     `json:"segment_offsets" bson:"segment_offsets"`
	Closed      []bool    `json:"closed,omitempty" bson:"closed,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewAsset builds an asset for a decomposition of a graph.
func NewAsset(hash string, g *topology.Graph, d topology.Decomposition, now time.Time) Asset {
	return Asset{
		Hash:        hash,
		VertexCount: g.VertexCount(),
		EdgeCount:   g.EdgeCount(),
		Indices:     d.Indices,
		Offsets:     d.Offsets,
		Closed:      d.Closed,
		CreatedAt:   now.UTC(),
	}
}

// Decomposition returns the stored result.
func (a Asset) Decomposition() topology.Decomposition {
	return topology.Decomposition{Indices: a.Indices, Offsets: a.Offsets, Closed: a.Closed}
}

// Store saves and loads assets by hash.
// Load returns a NOT_FOUND error for unknown hashes.
type Store interface {
	Save(ctx context.Context, a Asset) error
	Load(ctx context.Context, hash string) (Asset, error)
	Delete(ctx context.Context, hash string) error
	Close(ctx context.Context) error
}
