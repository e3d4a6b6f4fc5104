package game

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// MemoryHandTracker keeps hand history for the process lifetime only.
// Records are stored as JSON so all backends persist the same shape.
type MemoryHandTracker struct {
	hands map[string][]byte
}

func NewMemoryHandTracker() *MemoryHandTracker {
	return &MemoryHandTracker{
		hands: make(map[string][]byte),
	}
}

func historyKey(sessionID string, handNum uint32) string {
	return fmt.Sprintf("%s|%d", sessionID, handNum)
}

func (m *MemoryHandTracker) Save(record *HandRecord) error {
	data, err := jsoniter.Marshal(record)
	if err != nil {
		return err
	}
	m.hands[historyKey(record.SessionID, record.HandNum)] = data
	return nil
}

func (m *MemoryHandTracker) Load(sessionID string, handNum uint32) (*HandRecord, error) {
	data, ok := m.hands[historyKey(sessionID, handNum)]
	if !ok {
		return nil, fmt.Errorf("Hand record for Session: %s, Hand: %d is not found", sessionID, handNum)
	}
	record := &HandRecord{}
	if err := jsoniter.Unmarshal(data, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (m *MemoryHandTracker) Remove(sessionID string, handNum uint32) error {
	delete(m.hands, historyKey(sessionID, handNum))
	return nil
}
