package es

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

const pageSize = 500

// Reader reads one run document per hit from the runs index. Each _source is
// coerced through the same ingestion path as a JSON feed.
type Reader struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewReader(ctx context.Context, config ClientConfig) (*Reader, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	r := &Reader{
		client:    client,
		indexName: config.IndexName,
	}
	if err := r.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return r, nil
}

// LoadPoints pages through the whole index with search_after on runId.
func (r *Reader) LoadPoints(ctx context.Context) ([]domain.MetricPoint, error) {
	points := make([]domain.MetricPoint, 0)
	asc := sortorder.Asc

	var after []types.FieldValue
	for {
		req := r.client.Search().
			Index(r.indexName).
			Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
			Size(pageSize).
			Sort(&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"runId": {Order: &asc},
				},
			})
		if after != nil {
			req = req.SearchAfter(after...)
		}

		res, err := req.Do(ctx)
		if err != nil {
			slog.Error("Elasticsearch points query failed", "error", err, "index", r.indexName)
			return nil, fmt.Errorf("failed to execute search: %w", err)
		}

		for _, hit := range res.Hits.Hits {
			p, ok := ingest.ParsePoint(hit.Source_)
			if !ok {
				id := ""
				if hit.Id_ != nil {
					id = *hit.Id_
				}
				slog.Warn("Skipping malformed run document", "id", id)
				continue
			}
			points = append(points, p)
		}

		if len(res.Hits.Hits) < pageSize {
			break
		}
		after = res.Hits.Hits[len(res.Hits.Hits)-1].Sort
	}

	slog.Info("Loaded points from elasticsearch", "index", r.indexName, "count", len(points))
	return points, nil
}

func (r *Reader) AppendPoint(ctx context.Context, p domain.MetricPoint) error {
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}

	res, err := r.client.Index(r.indexName).
		Id(p.RunID).
		Document(p).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index run %s: %w", p.RunID, err)
	}

	slog.Debug("Run indexed", "id", p.RunID, "index", r.indexName, "result", res.Result)
	return nil
}

func (r *Reader) EnsureIndex(ctx context.Context) error {
	exists, err := r.client.Indices.Exists(r.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	docs := types.NewNestedProperty()
	docs.Properties = map[string]types.Property{
		"title":   types.NewKeywordProperty(),
		"score":   types.NewDoubleNumberProperty(),
		"index":   types.NewIntegerNumberProperty(),
		"chunkId": types.NewKeywordProperty(),
		"text":    types.NewTextProperty(),
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"runId":         types.NewKeywordProperty(),
			"questionId":    types.NewKeywordProperty(),
			"questionText":  types.NewTextProperty(),
			"timestamp":     types.NewDateProperty(),
			"llmScore":      types.NewDoubleNumberProperty(),
			"avgSimilarity": types.NewDoubleNumberProperty(),
			"humanFlags":    types.NewIntegerNumberProperty(),
			"configModel":   types.NewKeywordProperty(),
			"configTopK":    types.NewIntegerNumberProperty(),
			"retrievedDocs": docs,
		},
	}

	createRes, err := r.client.Indices.Create(r.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", r.indexName)
	return nil
}

// Healthy pings the cluster.
func (r *Reader) Healthy(ctx context.Context) bool {
	ok, err := r.client.Ping().Do(ctx)
	return err == nil && ok
}

var (
	_ storage.PointReader   = (*Reader)(nil)
	_ storage.PointAppender = (*Reader)(nil)
)
