package note

import (
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ searchIndexer = &searchIndexerMock{}

type searchIndexerMock struct {
	IndexNoteFunc  func(note domain.Note)
	DeleteNoteFunc func(id uuid.UUID)

	calls struct {
		IndexNote []struct {
			Note domain.Note
		}
		DeleteNote []struct {
			ID uuid.UUID
		}
	}
	lockIndexNote  sync.RWMutex
	lockDeleteNote sync.RWMutex
}

func (mock *searchIndexerMock) IndexNote(note domain.Note) {
	if mock.IndexNoteFunc == nil {
		panic("searchIndexerMock.IndexNoteFunc: method is nil but searchIndexer.IndexNote was just called")
	}
	callInfo := struct {
		Note domain.Note
	}{Note: note}
	mock.lockIndexNote.Lock()
	mock.calls.IndexNote = append(mock.calls.IndexNote, callInfo)
	mock.lockIndexNote.Unlock()
	mock.IndexNoteFunc(note)
}

func (mock *searchIndexerMock) IndexNoteCalls() []struct {
	Note domain.Note
} {
	mock.lockIndexNote.RLock()
	calls := mock.calls.IndexNote
	mock.lockIndexNote.RUnlock()
	return calls
}

func (mock *searchIndexerMock) DeleteNote(id uuid.UUID) {
	if mock.DeleteNoteFunc == nil {
		panic("searchIndexerMock.DeleteNoteFunc: method is nil but searchIndexer.DeleteNote was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockDeleteNote.Lock()
	mock.calls.DeleteNote = append(mock.calls.DeleteNote, callInfo)
	mock.lockDeleteNote.Unlock()
	mock.DeleteNoteFunc(id)
}

func (mock *searchIndexerMock) DeleteNoteCalls() []struct {
	ID uuid.UUID
} {
	mock.lockDeleteNote.RLock()
	calls := mock.calls.DeleteNote
	mock.lockDeleteNote.RUnlock()
	return calls
}
