package book

import (
	"context"
	"time"
)

// 图书事件类型(同时作为消息的routing key)
const (
	EventCreated     = "book.created"
	EventUpdated     = "book.updated"
	EventUnpublished = "book.unpublished"
	EventDeleted     = "book.deleted"
)

// Event 图书变更事件
type Event struct {
	Type       string    `json:"-"`
	BookID     uint      `json:"book_id"`
	AuthorID   uint      `json:"author_id"`
	Title      string    `json:"title,omitempty"`
	Published  bool      `json:"published"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent 根据图书当前状态构造事件
func NewEvent(eventType string, b *Book) Event {
	return Event{
		Type:       eventType,
		BookID:     b.ID,
		AuthorID:   b.AuthorID,
		Title:      b.Title,
		Published:  b.Published,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher 事件发布接口
// 发布失败不影响业务结果,由调用方记录日志
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
