package domain

import (
	"fmt"
	"sync/atomic"
	"time"
)

var customSeq atomic.Uint64

// NewCustomID returns an identifier for a derived recipe, e.g.
// "custom-1760832000123-7". The millisecond prefix keeps ids sortable and the
// process-wide sequence keeps them unique within one process.
func NewCustomID() string {
	return fmt.Sprintf("custom-%d-%d", time.Now().UnixMilli(), customSeq.Add(1))
}
