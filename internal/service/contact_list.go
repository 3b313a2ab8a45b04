package service

import (
	"Nimbus/internal/model"
	"sync"
)

// ContactListStore 好友/联系人列表，仅承载展示与在线状态覆写
type ContactListStore interface {
	LoadInitial(contacts []*model.Participant)
	Contacts() []*model.Participant
	// SetStatus 覆写联系人在线状态，未加载的联系人直接跳过
	SetStatus(userID string, status model.PresenceStatus) bool
}

type contactListStoreImpl struct {
	mu   sync.Mutex
	list []*model.Participant
}

// NewContactListStore 构造函数
func NewContactListStore() ContactListStore {
	return &contactListStoreImpl{}
}

func (s *contactListStoreImpl) LoadInitial(contacts []*model.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = make([]*model.Participant, len(contacts))
	copy(s.list, contacts)
}

func (s *contactListStoreImpl) Contacts() []*model.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Participant, len(s.list))
	copy(out, s.list)
	return out
}

func (s *contactListStoreImpl) SetStatus(userID string, status model.PresenceStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	hit := false
	for _, c := range s.list {
		if c.UserID == userID {
			c.Status = status
			hit = true
		}
	}
	return hit
}
