package protocol

import "fmt"

// Method enumerates every Store/Server operation a Message can carry
// (spec.md §4.4). Grounded on original_source/src/io/network/message's
// Method enum, generalized from its eval/evalmut split to the single
// Custom method spec.md names (resource alone distinguishes read-only
// EvalParams/EvalResult from read-write EvalMutParams/EvalMutResult).
type Method uint8

const (
	MethodPing Method = iota
	MethodSession
	MethodCount
	MethodList
	MethodLookup
	MethodGet
	MethodCreate
	MethodUpdate
	MethodUpsert
	MethodDelete
	MethodCustom
)

func (m Method) String() string {
	switch m {
	case MethodPing:
		return "ping"
	case MethodSession:
		return "session"
	case MethodCount:
		return "count"
	case MethodList:
		return "list"
	case MethodLookup:
		return "lookup"
	case MethodGet:
		return "get"
	case MethodCreate:
		return "create"
	case MethodUpdate:
		return "update"
	case MethodUpsert:
		return "upsert"
	case MethodDelete:
		return "delete"
	case MethodCustom:
		return "custom"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// IsReadOnly reports whether m only ever requires Read permission. Custom
// is excluded because its permission depends on the paired Resource
// (EvalParams/EvalResult are read-only, EvalMutParams/EvalMutResult are
// not).
func (m Method) IsReadOnly() bool {
	switch m {
	case MethodCount, MethodList, MethodLookup, MethodGet:
		return true
	default:
		return false
	}
}
