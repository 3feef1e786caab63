// internal/store/collaborators/elasticsearch.go
package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobseeker-scoring/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchApplications counts application documents by applicantId.
type ElasticsearchApplications struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearchApplications(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchApplications {
	return &ElasticsearchApplications{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"source": SourceApplications, "index": index}),
	}
}

func (s *ElasticsearchApplications) Applications(ctx context.Context, userID string) (int, bool) {
	n, err := s.count(ctx, userID)
	if err != nil {
		s.logger.Error("collaborator lookup failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		unavailable(SourceApplications)
		return 0, false
	}
	return n, true
}

func (s *ElasticsearchApplications) count(ctx context.Context, userID string) (int, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"applicantId": userID},
		},
	})

	req := esapi.CountRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return 0, fmt.Errorf("count request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("count query failed: %s", res.String())
	}

	var r struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return r.Count, nil
}
