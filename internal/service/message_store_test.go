package service

import (
	"Nimbus/internal/model"
	"testing"
	"time"
)

type stubDirectory struct {
	members map[string]bool
}

func (s *stubDirectory) IsParticipant(roomID, userID string) bool {
	return s.members[roomID+"/"+userID]
}

type stubIdentity struct {
	id string
}

func (s *stubIdentity) UserID() string { return s.id }

func newTestStore() (MessageStore, *stubDirectory) {
	dir := &stubDirectory{members: map[string]bool{
		"room1/alice": true,
		"room1/bob":   true,
	}}
	store := NewMessageStore(dir, &stubIdentity{id: "me"})
	store.SwitchRoom(model.RoomContext{RoomID: "room1"})
	return store, dir
}

func msg(id, clientID, roomID, senderID string) *model.Message {
	return &model.Message{
		ID:          id,
		ClientMsgID: clientID,
		RoomID:      roomID,
		SenderID:    senderID,
		Type:        model.MsgTypeText,
		Content:     "hello",
		CreatedAt:   time.Now(),
		IsActive:    true,
	}
}

func TestAppendIncomingIdempotent(t *testing.T) {
	store, _ := newTestStore()

	m := msg("1", "c1", "room1", "alice")
	if !store.AppendIncoming(m) {
		t.Fatalf("first append rejected")
	}
	if store.AppendIncoming(msg("1", "c1", "room1", "alice")) {
		t.Fatalf("duplicate id accepted")
	}
	if store.AppendIncoming(msg("2", "c1", "room1", "alice")) {
		t.Fatalf("duplicate clientMsgId accepted")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 message, got %d", store.Len())
	}
}

func TestAppendIncomingWrongRoomRejected(t *testing.T) {
	store, dir := newTestStore()
	dir.members["room2/alice"] = true

	if store.AppendIncoming(msg("1", "c1", "room2", "alice")) {
		t.Fatalf("message for another room accepted")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestAppendIncomingNonMemberRejected(t *testing.T) {
	store, _ := newTestStore()

	if store.AppendIncoming(msg("1", "c1", "room1", "stranger")) {
		t.Fatalf("non-member message accepted")
	}
}

func TestAppendIncomingSystemBypassesMembership(t *testing.T) {
	store, _ := newTestStore()

	m := msg("1", "", "room1", "")
	m.Type = model.MsgTypeSystem
	if !store.AppendIncoming(m) {
		t.Fatalf("system message rejected")
	}
}

func TestAppendIncomingLocalEchoRejected(t *testing.T) {
	store, dir := newTestStore()
	dir.members["room1/me"] = true

	if store.AppendIncoming(msg("1", "c1", "room1", "me")) {
		t.Fatalf("local echo accepted")
	}
}

func TestPrependNeverDuplicates(t *testing.T) {
	store, _ := newTestStore()
	store.LoadInitial([]*model.Message{
		msg("10", "", "room1", "alice"),
		msg("11", "", "room1", "bob"),
	})

	inserted := store.Prepend([]*model.Message{
		msg("8", "", "room1", "alice"),
		msg("9", "", "room1", "bob"),
	})
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}

	// 分页边界重叠：9 已加载
	inserted = store.Prepend([]*model.Message{
		msg("7", "", "room1", "alice"),
		msg("9", "", "room1", "bob"),
	})
	if inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", inserted)
	}

	msgs := store.Messages()
	seen := make(map[string]int)
	for _, m := range msgs {
		seen[m.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %s appears %d times", id, n)
		}
	}
	if msgs[0].ID != "7" {
		t.Fatalf("expected oldest first, head is %s", msgs[0].ID)
	}
}

func TestMarkRecalledAbsentIsNoop(t *testing.T) {
	store, _ := newTestStore()

	if store.MarkRecalled("missing") {
		t.Fatalf("recall of absent id reported found")
	}
	if store.Len() != 0 {
		t.Fatalf("recall inserted a message")
	}
}

func TestMarkRecalledSetsInactive(t *testing.T) {
	store, _ := newTestStore()
	store.LoadInitial([]*model.Message{msg("1", "", "room1", "alice")})

	if !store.MarkRecalled("1") {
		t.Fatalf("recall of loaded message not applied")
	}
	if store.Messages()[0].IsActive {
		t.Fatalf("message still active after recall")
	}
}

func TestSwitchRoomDiscardsState(t *testing.T) {
	store, _ := newTestStore()
	store.LoadInitial([]*model.Message{msg("1", "c1", "room1", "alice")})

	store.SwitchRoom(model.RoomContext{RoomID: "room2"})
	if store.Len() != 0 {
		t.Fatalf("room switch kept %d messages", store.Len())
	}
	if got := store.ActiveRoom().RoomID; got != "room2" {
		t.Fatalf("active room = %s", got)
	}
}

// 发送 clientMsgId=abc 的消息，发送响应分配 id=42，
// 随后实时事件携带同一 clientMsgId 到达：存储中始终只有一条消息且 id=42
func TestSendThenEchoNoDuplicateBubble(t *testing.T) {
	store, dir := newTestStore()
	dir.members["room1/me"] = true

	local := msg("", "abc", "room1", "me")
	if !store.AppendLocal(local) {
		t.Fatalf("optimistic insert rejected")
	}
	if !store.ConfirmLocal("abc", "42", time.Now()) {
		t.Fatalf("confirm failed")
	}

	echo := msg("42", "abc", "room1", "me")
	if store.AppendIncoming(echo) {
		t.Fatalf("echo accepted")
	}

	msgs := store.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected exactly 1 message, got %d", len(msgs))
	}
	if msgs[0].ID != "42" {
		t.Fatalf("expected server id 42, got %q", msgs[0].ID)
	}
}

func TestDropLocalRemovesOptimisticMessage(t *testing.T) {
	store, _ := newTestStore()

	store.AppendLocal(msg("", "c9", "room1", "me"))
	store.DropLocal("c9")
	if store.Len() != 0 {
		t.Fatalf("optimistic message not rolled back")
	}

	// 回滚后同一 clientMsgId 可重新插入
	if !store.AppendLocal(msg("", "c9", "room1", "me")) {
		t.Fatalf("re-insert after rollback rejected")
	}
}
