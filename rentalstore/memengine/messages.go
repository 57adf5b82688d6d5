package memengine

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

type messageStore struct {
	store    *Store
	mu       sync.Mutex
	messages []core.Message
	nextID   core.MessageID
}

func (m *messageStore) Save(ctx context.Context, message core.Message) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, err
	}

	if err := m.store.fault(OpSaveMessage); err != nil {
		return core.Message{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	message.ID = m.nextID
	m.messages = append(m.messages, message)

	return message, nil
}

func (m *messageStore) ForMember(_ context.Context, memberID core.MemberID) ([]core.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := make([]core.Message, 0)
	for _, message := range m.messages {
		if message.MemberID == memberID {
			found = append(found, message)
		}
	}

	return found, nil
}
