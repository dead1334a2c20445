package metrics

import (
	"fmt"
	"sync/atomic"
)

// UpdateMetrics — счётчики одного прогона синхронизации.
type UpdateMetrics struct {
	BatchesSent  atomic.Int32
	UpdatedCount atomic.Int32
	Rejected     atomic.Int32
	PagesFetched atomic.Int32
}

func (m *UpdateMetrics) String() string {
	return fmt.Sprintf("pages=%d batches=%d updated=%d rejected=%d",
		m.PagesFetched.Load(), m.BatchesSent.Load(), m.UpdatedCount.Load(), m.Rejected.Load())
}
