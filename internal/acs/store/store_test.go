package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordKeyAndIndexKey(t *testing.T) {
	s := &TxnStore{prefix: "acs"}

	assert.Equal(t, "acs:11111111-1111-4111-8111-111111111111", s.recordKey("11111111-1111-4111-8111-111111111111"))
	assert.Equal(t, "acs:acs:22222222-2222-4222-8222-222222222222", s.indexKey("22222222-2222-4222-8222-222222222222"))
}

func TestIsIndexKey(t *testing.T) {
	s := &TxnStore{prefix: "acs"}
	indexPrefix := s.prefix + ":" + indexSegment + ":"

	assert.True(t, isIndexKey("acs:acs:22222222-2222-4222-8222-222222222222", indexPrefix))
	assert.False(t, isIndexKey("acs:11111111-1111-4111-8111-111111111111", indexPrefix))
}
