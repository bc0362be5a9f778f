package store

import "time"

// SnapshotRecord is the persisted descriptor snapshot of one device.
type SnapshotRecord struct {
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	Fingerprint string    `json:"fingerprint"`
	Data        []byte    `json:"data"`
	UpdatedAt   time.Time `json:"updated_at"`
}
