// Package store implements the persistent transaction store (C2): a
// TTL-bounded mapping from serverTransId to TransactionRecord, with a
// secondary acsTransId index and linear-backoff retry on transient
// backend errors.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"acs/internal/acs/model"
	"acs/pkg/helpers"
	"acs/pkg/kvclient"
	"acs/pkg/logger"
	acsmodel "acs/pkg/model"
	"acs/pkg/trace"
)

const indexSegment = "acs"

const (
	maxAttempts  = 3
	backoffUnit  = 100 * time.Millisecond
)

// TxnStore is the transaction store backing C3/C4/C5.
type TxnStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Log
	tracer *trace.Tracer
}

// New builds a TxnStore over an already-connected kvclient.Client.
func New(kv *kvclient.Client, cfg *acsmodel.Cfg, log *logger.Log, tracer *trace.Tracer) *TxnStore {
	return &TxnStore{
		rdb:    kv.RedisClient,
		prefix: cfg.Common.KeyValue.KeyPrefix,
		ttl:    time.Duration(cfg.Common.KeyValue.TTLSeconds) * time.Second,
		log:    log,
		tracer: tracer,
	}
}

func (s *TxnStore) recordKey(serverTransID string) string {
	return s.prefix + ":" + serverTransID
}

func (s *TxnStore) indexKey(acsTransID string) string {
	return s.prefix + ":" + indexSegment + ":" + acsTransID
}

// Insert binds serverTransID to rec with the configured TTL and writes the
// secondary acsTransId index alongside it (spec.md §4.2, insert).
func (s *TxnStore) Insert(ctx context.Context, serverTransID string, rec *model.TransactionRecord) error {
	ctx, span := s.tracer.Start(ctx, "store:TxnStore:Insert")
	defer span.End()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshalling transaction record: %v", helpers.ErrInternal, err)
	}

	if err := s.withRetry(ctx, func() error {
		return s.rdb.Set(ctx, s.recordKey(serverTransID), data, s.ttl).Err()
	}); err != nil {
		return err
	}

	s.writeIndex(ctx, serverTransID, rec.ACSTransID)
	return nil
}

// Get returns the current value for serverTransID, or ErrNotFound if the
// key is absent or has expired (spec.md §4.2, get).
func (s *TxnStore) Get(ctx context.Context, serverTransID string) (*model.TransactionRecord, error) {
	ctx, span := s.tracer.Start(ctx, "store:TxnStore:Get")
	defer span.End()

	return s.getRecord(ctx, s.recordKey(serverTransID))
}

// Update rebinds serverTransID to rec, refreshing the TTL, and returns
// ErrNotFound if the key does not currently exist (spec.md §4.2, update).
func (s *TxnStore) Update(ctx context.Context, serverTransID string, rec *model.TransactionRecord) error {
	ctx, span := s.tracer.Start(ctx, "store:TxnStore:Update")
	defer span.End()

	key := s.recordKey(serverTransID)
	var exists int64
	if err := s.withRetry(ctx, func() error {
		var err error
		exists, err = s.rdb.Exists(ctx, key).Result()
		return err
	}); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: transaction %s", helpers.ErrNotFound, serverTransID)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshalling transaction record: %v", helpers.ErrInternal, err)
	}

	if err := s.withRetry(ctx, func() error {
		return s.rdb.Set(ctx, key, data, s.ttl).Err()
	}); err != nil {
		return err
	}

	s.writeIndex(ctx, serverTransID, rec.ACSTransID)
	return nil
}

// FindByAcsTransId returns the serverTransId and record whose acsTransId
// matches acsTransID. It first tries the secondary index and falls back to
// a linear SCAN over the prefix when the index is missing or stale
// (spec.md §4.2, "Secondary lookup").
func (s *TxnStore) FindByAcsTransId(ctx context.Context, acsTransID string) (string, *model.TransactionRecord, error) {
	ctx, span := s.tracer.Start(ctx, "store:TxnStore:FindByAcsTransId")
	defer span.End()

	if serverTransID, rec, ok := s.lookupViaIndex(ctx, acsTransID); ok {
		return serverTransID, rec, nil
	}

	return s.scanForAcsTransId(ctx, acsTransID)
}

func (s *TxnStore) lookupViaIndex(ctx context.Context, acsTransID string) (string, *model.TransactionRecord, bool) {
	var serverTransID string
	err := s.withRetry(ctx, func() error {
		var err error
		serverTransID, err = s.rdb.Get(ctx, s.indexKey(acsTransID)).Result()
		return err
	})
	if err != nil {
		return "", nil, false
	}

	rec, err := s.getRecord(ctx, s.recordKey(serverTransID))
	if err != nil || rec.ACSTransID != acsTransID {
		return "", nil, false
	}
	return serverTransID, rec, true
}

func (s *TxnStore) scanForAcsTransId(ctx context.Context, acsTransID string) (string, *model.TransactionRecord, error) {
	var cursor uint64
	pattern := s.prefix + ":*"
	indexPrefix := s.prefix + ":" + indexSegment + ":"

	for {
		var keys []string
		if err := s.withRetry(ctx, func() error {
			var err error
			keys, cursor, err = s.rdb.Scan(ctx, cursor, pattern, 100).Result()
			return err
		}); err != nil {
			return "", nil, err
		}

		for _, key := range keys {
			if isIndexKey(key, indexPrefix) {
				continue
			}
			rec, err := s.getRecord(ctx, key)
			if err != nil {
				continue
			}
			if rec.ACSTransID == acsTransID {
				return strings.TrimPrefix(key, s.prefix+":"), rec, nil
			}
		}

		if cursor == 0 {
			break
		}
	}

	return "", nil, fmt.Errorf("%w: no transaction with acsTransId %s", helpers.ErrNotFound, acsTransID)
}

// isIndexKey reports whether key is a secondary acsTransId index entry
// rather than a primary transaction record, so a prefix scan can skip it.
func isIndexKey(key, indexPrefix string) bool {
	return strings.HasPrefix(key, indexPrefix)
}

func (s *TxnStore) getRecord(ctx context.Context, key string) (*model.TransactionRecord, error) {
	var data string
	err := s.withRetry(ctx, func() error {
		var err error
		data, err = s.rdb.Get(ctx, key).Result()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", helpers.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	var rec model.TransactionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling transaction record: %v", helpers.ErrInternal, err)
	}
	return &rec, nil
}

// writeIndex writes the secondary index best-effort: a failure here does
// not fail the primary write, since FindByAcsTransId falls back to SCAN.
func (s *TxnStore) writeIndex(ctx context.Context, serverTransID, acsTransID string) {
	if acsTransID == "" {
		return
	}
	if err := s.withRetry(ctx, func() error {
		return s.rdb.Set(ctx, s.indexKey(acsTransID), serverTransID, s.ttl).Err()
	}); err != nil {
		s.log.Info("failed to write acsTransId index, findByAcsTransId will fall back to scan", "acsTransId", acsTransID, "error", err.Error())
	}
}

// withRetry runs fn up to maxAttempts times with linear back-off (100ms *
// attempt) on transient errors. redis.Nil (key absent) is never retried -
// it is a valid "not found" result, not a backend failure (spec.md §4.2,
// "Retry").
func (s *TxnStore) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.Nil) {
			return err
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * backoffUnit):
		}
	}
	return fmt.Errorf("%w: %v", helpers.ErrBackend, lastErr)
}
