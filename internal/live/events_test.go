package live

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestDecodeMessageCreated(t *testing.T) {
	raw := []byte(`{
		"event": "message-created",
		"data": {"id":"1","roomId":"room1","senderId":"alice","type":"TEXT","content":"嗨","createdAt":"2026-08-29T10:00:00Z"}
	}`)

	ev, err := DecodeEvent(raw, validator.New())
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	mc, ok := ev.(MessageCreated)
	if !ok {
		t.Fatalf("wrong variant: %T", ev)
	}
	if mc.Message.ID != "1" || mc.Message.RoomID != "room1" {
		t.Fatalf("payload: %+v", mc.Message)
	}
	if !mc.Message.IsActive {
		t.Fatalf("isActive default must be true")
	}
}

func TestDecodeRejectsMissingFields(t *testing.T) {
	// message-created 缺 roomId
	raw := []byte(`{"event":"message-created","data":{"id":"1","type":"TEXT"}}`)
	if _, err := DecodeEvent(raw, validator.New()); err == nil {
		t.Fatalf("payload missing roomId accepted")
	}
}

func TestDecodeUnknownEventName(t *testing.T) {
	raw := []byte(`{"event":"something-new","data":{}}`)
	if _, err := DecodeEvent(raw, validator.New()); err == nil {
		t.Fatalf("unknown event accepted")
	}
}

func TestDecodeRoomCreatedEnforcesInvariants(t *testing.T) {
	// DIRECT 房间必须恰好两名成员
	raw := []byte(`{
		"event": "room-created",
		"data": {"room": {
			"roomId":"room9","roomType":"DIRECT","name":"私聊",
			"participants":[{"userId":"me","role":"MEMBER","status":"OFFLINE"}]
		}}
	}`)
	if _, err := DecodeEvent(raw, validator.New()); err == nil {
		t.Fatalf("DIRECT room with one participant accepted")
	}
}

func TestDecodeMemberRemoved(t *testing.T) {
	raw := []byte(`{
		"event": "member-removed",
		"data": {"roomId":"room1","userId":"alice"}
	}`)

	ev, err := DecodeEvent(raw, validator.New())
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	mc, ok := ev.(MemberChanged)
	if !ok {
		t.Fatalf("wrong variant: %T", ev)
	}
	if mc.Change != MemberRemoved || mc.UserID != "alice" {
		t.Fatalf("payload: %+v", mc)
	}
}

func TestDecodeUserStatus(t *testing.T) {
	raw := []byte(`{"event":"user-status","data":{"userId":"bob","isOnline":true}}`)

	ev, err := DecodeEvent(raw, validator.New())
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	us, ok := ev.(UserStatus)
	if !ok {
		t.Fatalf("wrong variant: %T", ev)
	}
	if us.UserID != "bob" || !us.Online {
		t.Fatalf("payload: %+v", us)
	}
}
