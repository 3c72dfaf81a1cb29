package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/models"
)

const DefaultIndex = "service-offerings"

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}
	return client, nil
}

// IndexService upserts one offering document, keyed by its database ID.
func IndexService(ctx context.Context, client *elasticsearch.Client, index string, svc *models.ServiceOffering) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(svc); err != nil {
		return err
	}

	res, err := client.Index(index, &buf,
		client.Index.WithContext(ctx),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(svc.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index service %d: %w", svc.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index service %d: %s", svc.ID, res.Status())
	}
	return nil
}

func DeleteService(ctx context.Context, client *elasticsearch.Client, index string, id uint) error {
	res, err := client.Delete(index, strconv.FormatUint(uint64(id), 10),
		client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete service %d from index: %w", id, err)
	}
	defer res.Body.Close()
	// 404 means the document was never indexed; nothing to clean up.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete service %d from index: %s", id, res.Status())
	}
	return nil
}

func Search(ctx context.Context, client *elasticsearch.Client, index, query string, from, size int) (int64, []models.ServiceOffering, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"name^2", "description", "category"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"active": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(index),
		client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.ServiceOffering `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	items := make([]models.ServiceOffering, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}
