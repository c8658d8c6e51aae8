package xswap

import (
	proto "github.com/gogo/protobuf/proto"
	github_com_iov_one_xswap "github.com/iov-one/xswap"
)

// State of a swap. A swap that was never opened is INVALID and is not
// stored.
type State int32

const (
	StateInvalid State = 0
	StateOpen    State = 1
	StateClosed  State = 2
)

var State_name = map[int32]string{
	0: "STATE_INVALID",
	1: "STATE_OPEN",
	2: "STATE_CLOSED",
}

var State_value = map[string]int32{
	"STATE_INVALID": 0,
	"STATE_OPEN":    1,
	"STATE_CLOSED":  2,
}

func (x State) String() string {
	return proto.EnumName(State_name, int32(x))
}

type EventKind int32

const (
	EventInvalid  EventKind = 0
	EventOpened   EventKind = 1
	EventRevealed EventKind = 2
	EventClosed   EventKind = 3
)

var EventKind_name = map[int32]string{
	0: "EVENT_INVALID",
	1: "EVENT_OPENED",
	2: "EVENT_REVEALED",
	3: "EVENT_CLOSED",
}

var EventKind_value = map[string]int32{
	"EVENT_INVALID":  0,
	"EVENT_OPENED":   1,
	"EVENT_REVEALED": 2,
	"EVENT_CLOSED":   3,
}

func (x EventKind) String() string {
	return proto.EnumName(EventKind_name, int32(x))
}

// Swap is the escrow record of a single swap identifier. Records are never
// deleted, a closed swap remains as the audit trail.
type Swap struct {
	// Sender is entitled to refunds.
	Sender github_com_iov_one_xswap.Address `protobuf:"bytes,1,opt,name=sender,proto3,casttype=github.com/iov-one/xswap.Address" json:"sender,omitempty"`
	// Receiver is entitled to the claim payout.
	Receiver github_com_iov_one_xswap.Address `protobuf:"bytes,2,opt,name=receiver,proto3,casttype=github.com/iov-one/xswap.Address" json:"receiver,omitempty"`
	// Principal value held in escrow.
	PrincipalValue uint64 `protobuf:"varint,3,opt,name=principal_value,json=principalValue,proto3" json:"principal_value,omitempty"`
	// Value expected on the counterpart chain. Informational.
	CounterpartValue     uint64 `protobuf:"varint,4,opt,name=counterpart_value,json=counterpartValue,proto3" json:"counterpart_value,omitempty"`
	CounterpartSenderRef string `protobuf:"bytes,5,opt,name=counterpart_sender_ref,json=counterpartSenderRef,proto3" json:"counterpart_sender_ref,omitempty"`
	CounterpartEscrowRef string `protobuf:"bytes,6,opt,name=counterpart_escrow_ref,json=counterpartEscrowRef,proto3" json:"counterpart_escrow_ref,omitempty"`
	// Content hash of the claim-reveal message.
	ClaimHash []byte `protobuf:"bytes,7,opt,name=claim_hash,json=claimHash,proto3" json:"claim_hash,omitempty"`
	// Content hash of the refund-reveal message.
	RefundHash []byte `protobuf:"bytes,8,opt,name=refund_hash,json=refundHash,proto3" json:"refund_hash,omitempty"`
	// Signer is an optional identity that the reveal signatures must be
	// produced by. Empty accepts any identity.
	Signer              []byte                            `protobuf:"bytes,9,opt,name=signer,proto3" json:"signer,omitempty"`
	ClaimDeadline       github_com_iov_one_xswap.UnixTime `protobuf:"varint,10,opt,name=claim_deadline,json=claimDeadline,proto3,casttype=github.com/iov-one/xswap.UnixTime" json:"claim_deadline,omitempty"`
	RefundGraceDeadline github_com_iov_one_xswap.UnixTime `protobuf:"varint,11,opt,name=refund_grace_deadline,json=refundGraceDeadline,proto3,casttype=github.com/iov-one/xswap.UnixTime" json:"refund_grace_deadline,omitempty"`
	Unlocked            bool                              `protobuf:"varint,12,opt,name=unlocked,proto3" json:"unlocked,omitempty"`
	// Claim-reveal message published when the swap was unlocked.
	RevealedMessage []byte                            `protobuf:"bytes,13,opt,name=revealed_message,json=revealedMessage,proto3" json:"revealed_message,omitempty"`
	State           State                             `protobuf:"varint,14,opt,name=state,proto3,enum=xswap.State" json:"state,omitempty"`
	OpenedAt        github_com_iov_one_xswap.UnixTime `protobuf:"varint,15,opt,name=opened_at,json=openedAt,proto3,casttype=github.com/iov-one/xswap.UnixTime" json:"opened_at,omitempty"`
	ClosedAt        github_com_iov_one_xswap.UnixTime `protobuf:"varint,16,opt,name=closed_at,json=closedAt,proto3,casttype=github.com/iov-one/xswap.UnixTime" json:"closed_at,omitempty"`
	// Payee received the principal when the swap was closed.
	Payee github_com_iov_one_xswap.Address `protobuf:"bytes,17,opt,name=payee,proto3,casttype=github.com/iov-one/xswap.Address" json:"payee,omitempty"`
}

func (m *Swap) Reset()         { *m = Swap{} }
func (m *Swap) String() string { return proto.CompactTextString(m) }
func (*Swap) ProtoMessage()    {}

// Event is a journal entry of a single swap transition.
type Event struct {
	Kind   EventKind `protobuf:"varint,1,opt,name=kind,proto3,enum=xswap.EventKind" json:"kind,omitempty"`
	SwapID []byte    `protobuf:"bytes,2,opt,name=swap_id,json=swapId,proto3" json:"swap_id,omitempty"`
	// Sequence orders the events of a single swap, starting at 1.
	Sequence int64 `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
	// Receiver of the swap, set for Opened.
	Receiver github_com_iov_one_xswap.Address `protobuf:"bytes,4,opt,name=receiver,proto3,casttype=github.com/iov-one/xswap.Address" json:"receiver,omitempty"`
	// Recipient of the principal, set for Closed.
	Recipient github_com_iov_one_xswap.Address `protobuf:"bytes,5,opt,name=recipient,proto3,casttype=github.com/iov-one/xswap.Address" json:"recipient,omitempty"`
	Amount    uint64                           `protobuf:"varint,6,opt,name=amount,proto3" json:"amount,omitempty"`
	// Message is the revealed claim message, set for Revealed.
	Message []byte                            `protobuf:"bytes,7,opt,name=message,proto3" json:"message,omitempty"`
	Time    github_com_iov_one_xswap.UnixTime `protobuf:"varint,8,opt,name=time,proto3,casttype=github.com/iov-one/xswap.UnixTime" json:"time,omitempty"`
}

func (m *Event) Reset()         { *m = Event{} }
func (m *Event) String() string { return proto.CompactTextString(m) }
func (*Event) ProtoMessage()    {}

// Configuration holds the swap windows. The claim window is the time after
// open during which the claim-reveal is accepted. The settlement window is
// the time after open when an unlocked swap can be paid out. The
// settlement window must be longer than the claim window.
type Configuration struct {
	ClaimWindow      github_com_iov_one_xswap.UnixDuration `protobuf:"varint,1,opt,name=claim_window,json=claimWindow,proto3,casttype=github.com/iov-one/xswap.UnixDuration" json:"claim_window,omitempty"`
	SettlementWindow github_com_iov_one_xswap.UnixDuration `protobuf:"varint,2,opt,name=settlement_window,json=settlementWindow,proto3,casttype=github.com/iov-one/xswap.UnixDuration" json:"settlement_window,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("xswap.State", State_name, State_value)
	proto.RegisterEnum("xswap.EventKind", EventKind_name, EventKind_value)
	proto.RegisterType((*Swap)(nil), "xswap.Swap")
	proto.RegisterType((*Event)(nil), "xswap.Event")
	proto.RegisterType((*Configuration)(nil), "xswap.Configuration")
}
