package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ searchIndexer = &searchIndexerMock{}

type searchIndexerMock struct {
	IndexChatFunc  func(chat domain.Chat)
	DeleteChatFunc func(id uuid.UUID)

	calls struct {
		IndexChat []struct {
			Chat domain.Chat
		}
		DeleteChat []struct {
			ID uuid.UUID
		}
	}
	lockIndexChat  sync.RWMutex
	lockDeleteChat sync.RWMutex
}

func (mock *searchIndexerMock) IndexChat(chat domain.Chat) {
	if mock.IndexChatFunc == nil {
		panic("searchIndexerMock.IndexChatFunc: method is nil but searchIndexer.IndexChat was just called")
	}
	callInfo := struct {
		Chat domain.Chat
	}{Chat: chat}
	mock.lockIndexChat.Lock()
	mock.calls.IndexChat = append(mock.calls.IndexChat, callInfo)
	mock.lockIndexChat.Unlock()
	mock.IndexChatFunc(chat)
}

func (mock *searchIndexerMock) IndexChatCalls() []struct {
	Chat domain.Chat
} {
	mock.lockIndexChat.RLock()
	calls := mock.calls.IndexChat
	mock.lockIndexChat.RUnlock()
	return calls
}

func (mock *searchIndexerMock) DeleteChat(id uuid.UUID) {
	if mock.DeleteChatFunc == nil {
		panic("searchIndexerMock.DeleteChatFunc: method is nil but searchIndexer.DeleteChat was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockDeleteChat.Lock()
	mock.calls.DeleteChat = append(mock.calls.DeleteChat, callInfo)
	mock.lockDeleteChat.Unlock()
	mock.DeleteChatFunc(id)
}

func (mock *searchIndexerMock) DeleteChatCalls() []struct {
	ID uuid.UUID
} {
	mock.lockDeleteChat.RLock()
	calls := mock.calls.DeleteChat
	mock.lockDeleteChat.RUnlock()
	return calls
}
