// Package persistence holds the bucket codec shared by the snapshot backends.
package persistence

import (
	"encoding/json"
	"fmt"

	"mecore/pkg/domain"
)

// Row is one persisted snapshot section.
type Row struct {
	Bucket  string
	Payload []byte
}

// EncodeBuckets splits a snapshot into one JSON row per bucket, in
// domain.Buckets order.
func EncodeBuckets(snapshot domain.NetworkSnapshot) ([]Row, error) {
	rows := make([]Row, 0, len(domain.Buckets))
	for _, bucket := range domain.Buckets {
		data, err := json.Marshal(snapshot.BucketTarget(bucket))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", bucket, err)
		}
		rows = append(rows, Row{Bucket: bucket, Payload: data})
	}
	return rows, nil
}

// DecodeBuckets rebuilds a snapshot from persisted rows. Unknown buckets and
// empty payloads are skipped.
func DecodeBuckets(rows []Row) (domain.NetworkSnapshot, error) {
	var snapshot domain.NetworkSnapshot
	for _, r := range rows {
		if len(r.Payload) == 0 {
			continue
		}
		target := snapshot.BucketTarget(r.Bucket)
		if target == nil {
			continue
		}
		if err := json.Unmarshal(r.Payload, target); err != nil {
			return domain.NetworkSnapshot{}, fmt.Errorf("decode %s: %w", r.Bucket, err)
		}
	}
	return snapshot, nil
}
