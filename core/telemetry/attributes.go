package telemetry

import "go.opentelemetry.io/otel/attribute"

// CallKind classifies a dispatcher call.
type CallKind int

func (k CallKind) String() string {
	switch k {
	case CallGet:
		return "get"
	case CallSet:
		return "set"
	case CallInvoke:
		return "invoke"
	case CallUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

const (
	CallUnknown CallKind = iota
	CallGet
	CallSet
	CallInvoke
)

// Attribute keys.
const (
	KeyCallType   = "mx.call_type"
	KeyObjectName = "mx.object_name"
	KeyMember     = "mx.member"
	KeyBatchSize  = "mx.batch_size"
)

func CallType(k CallKind) attribute.KeyValue {
	return attribute.String(KeyCallType, k.String())
}

func ObjectName(name string) attribute.KeyValue {
	return attribute.String(KeyObjectName, name)
}

func Member(name string) attribute.KeyValue {
	return attribute.String(KeyMember, name)
}

func BatchSize(n int) attribute.KeyValue {
	return attribute.Int(KeyBatchSize, n)
}
