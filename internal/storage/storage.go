package storage

import "positionScope/internal/model"

// Storage defines a sink for pool snapshots and computed positions.
type Storage interface {
	PutSnapshots(snapshots []model.PoolSnapshot) error
	PutPositionRecords(records []model.PositionRecord) error
}
