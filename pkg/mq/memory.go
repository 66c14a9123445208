package mq

import (
	"context"
	"sync"
)

// MemoryPublisher 把事件保存在内存中 用于测试和本地调试
type MemoryPublisher struct {
	mu         sync.Mutex
	engagement []*EngagementEvent
	moderation []*ModerationEvent
	// Err 不为空时所有发布都返回该错误
	Err error
}

func (m *MemoryPublisher) PublishEngagementEvent(_ context.Context, event *EngagementEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.engagement = append(m.engagement, event)
	return nil
}

func (m *MemoryPublisher) PublishModerationEvent(_ context.Context, event *ModerationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.moderation = append(m.moderation, event)
	return nil
}

func (m *MemoryPublisher) EngagementEvents() []*EngagementEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*EngagementEvent(nil), m.engagement...)
}

func (m *MemoryPublisher) ModerationEvents() []*ModerationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*ModerationEvent(nil), m.moderation...)
}
