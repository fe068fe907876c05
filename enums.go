package hookbase

import "github.com/hookbase/hookbase-go/pkg/jsonvalue"

// SortOrder is the direction of a sorted list.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (s SortOrder) MarshalJSON() ([]byte, error) { return jsonvalue.EncodeEnum(s) }

func (s *SortOrder) UnmarshalJSON(data []byte) error {
	v, err := jsonvalue.DecodeEnum(data, SortAsc, SortDesc)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DeliveryStatus is the state of an inbound event delivery to a destination.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryQueued    DeliveryStatus = "queued"
	DeliverySending   DeliveryStatus = "sending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryExhausted DeliveryStatus = "exhausted"
)

// Terminal reports whether no further attempts will be made.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryExhausted
}

func (s DeliveryStatus) MarshalJSON() ([]byte, error) { return jsonvalue.EncodeEnum(s) }

func (s *DeliveryStatus) UnmarshalJSON(data []byte) error {
	v, err := jsonvalue.DecodeEnum(data,
		DeliveryPending, DeliveryQueued, DeliverySending,
		DeliveryDelivered, DeliveryFailed, DeliveryExhausted,
	)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MessageStatus is the state of an outbound webhook message.
type MessageStatus string

const (
	MessagePending   MessageStatus = "pending"
	MessageSuccess   MessageStatus = "success"
	MessageFailed    MessageStatus = "failed"
	MessageExhausted MessageStatus = "exhausted"
)

func (s MessageStatus) MarshalJSON() ([]byte, error) { return jsonvalue.EncodeEnum(s) }

func (s *MessageStatus) UnmarshalJSON(data []byte) error {
	v, err := jsonvalue.DecodeEnum(data, MessagePending, MessageSuccess, MessageFailed, MessageExhausted)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
