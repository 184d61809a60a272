package types

import (
	"cosmossdk.io/math"
)

// MemberDiff records one account's net voting-power change within a single
// command. Old is nil when the account had no power before, New is nil when
// it dropped out of the membership set.
type MemberDiff struct {
	Account string    `json:"account"`
	Old     *math.Int `json:"old,omitempty"`
	New     *math.Int `json:"new,omitempty"`
}

// NewMemberDiff creates a diff record for an account.
func NewMemberDiff(account string, oldPower, newPower *math.Int) MemberDiff {
	return MemberDiff{
		Account: account,
		Old:     oldPower,
		New:     newPower,
	}
}

// OutboundMsg is an instruction emitted by a command for the host to dispatch
// after the command's storage writes are staged. The ledger never observes
// the result of an outbound instruction; if one fails, the host reverts the
// whole transaction.
type OutboundMsg interface {
	isOutbound()
}

// MsgUndelegate instructs the external token ledger to release previously
// delegated tokens back to the recipient.
type MsgUndelegate struct {
	Recipient string
	Amount    math.Int
}

// MsgTransfer instructs the external token ledger to transfer reward tokens
// to the recipient.
type MsgTransfer struct {
	Recipient string
	Amount    math.Int
}

// MsgMemberChanged notifies a registered observer of the full batch of
// voting-power diffs produced by one command.
type MsgMemberChanged struct {
	Observer string
	Diffs    []MemberDiff
}

func (MsgUndelegate) isOutbound()    {}
func (MsgTransfer) isOutbound()      {}
func (MsgMemberChanged) isOutbound() {}

// Outbox collects outbound instructions during command handling. The host
// drains it after a successful command and discards it when the command
// aborts.
type Outbox struct {
	msgs []OutboundMsg
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

// Append queues an outbound instruction.
func (o *Outbox) Append(msg OutboundMsg) {
	o.msgs = append(o.msgs, msg)
}

// Drain returns all queued instructions and empties the outbox.
func (o *Outbox) Drain() []OutboundMsg {
	msgs := o.msgs
	o.msgs = nil
	return msgs
}

// Len returns the number of queued instructions.
func (o *Outbox) Len() int {
	return len(o.msgs)
}
