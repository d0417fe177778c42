package protocol

import "fmt"

// Resource enumerates the payload kinds a Message can carry (spec.md
// §4.4). Grounded on
// original_source/src/io/network/message/resource.rs's Resource enum,
// adopting the richer EvalParams/EvalResult/EvalMutParams/EvalMutResult
// taxonomy per spec.md §9's resolution of the source's two contradictory
// variants.
type Resource uint8

const (
	ResourceNone Resource = iota
	ResourceSession
	ResourceNode
	ResourceCoin
	ResourceInput
	ResourceOutput
	ResourceTransaction
	ResourceBlockNode
	ResourceBlock
	ResourceBlockGraph
	ResourceEvalParams
	ResourceEvalResult
	ResourceEvalMutParams
	ResourceEvalMutResult
	ResourceError
)

func (r Resource) String() string {
	switch r {
	case ResourceNone:
		return "none"
	case ResourceSession:
		return "session"
	case ResourceNode:
		return "node"
	case ResourceCoin:
		return "coin"
	case ResourceInput:
		return "input"
	case ResourceOutput:
		return "output"
	case ResourceTransaction:
		return "transaction"
	case ResourceBlockNode:
		return "blocknode"
	case ResourceBlock:
		return "block"
	case ResourceBlockGraph:
		return "blockgraph"
	case ResourceEvalParams:
		return "evalparams"
	case ResourceEvalResult:
		return "evalresult"
	case ResourceEvalMutParams:
		return "evalmutparams"
	case ResourceEvalMutResult:
		return "evalmutresult"
	case ResourceError:
		return "error"
	default:
		return fmt.Sprintf("resource(%d)", uint8(r))
	}
}

// isDataResource reports whether r is one of the domain-entity resources
// Node..BlockGraph, which pair with every CRUD-style method.
func (r Resource) isDataResource() bool {
	return r >= ResourceNode && r <= ResourceBlockGraph
}
