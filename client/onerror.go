// Package client implements the request-assembly and on-error send
// policies of spec.md §5: Ignore, Fail, RetryAndIgnore(n), RetryAndFail(n).
// Grounded on
// original_source/src/io/network/client/client.rs's send_ignore_on_error/
// send_fail_on_error/send_retry_and_ignore/send_retry_and_fail methods.
package client

import "fmt"

// OnErrorKind discriminates the four send policies a Client can run.
type OnErrorKind int

const (
	OnErrorIgnore OnErrorKind = iota
	OnErrorFail
	OnErrorRetryAndIgnore
	OnErrorRetryAndFail
)

// OnError is the policy a Client.Send runs against a failing response.
// Times is only meaningful for the Retry variants; RetryAndFail(0) behaves
// identically to Fail and RetryAndIgnore(0) identically to Ignore (spec.md
// §8 R3).
type OnError struct {
	Kind  OnErrorKind
	Times uint64
}

func Ignore() OnError                  { return OnError{Kind: OnErrorIgnore} }
func Fail() OnError                    { return OnError{Kind: OnErrorFail} }
func RetryAndIgnore(times uint64) OnError { return OnError{Kind: OnErrorRetryAndIgnore, Times: times} }
func RetryAndFail(times uint64) OnError   { return OnError{Kind: OnErrorRetryAndFail, Times: times} }

func (e OnError) String() string {
	switch e.Kind {
	case OnErrorIgnore:
		return "ignore"
	case OnErrorFail:
		return "fail"
	case OnErrorRetryAndIgnore:
		return fmt.Sprintf("retry_and_ignore(%d)", e.Times)
	case OnErrorRetryAndFail:
		return fmt.Sprintf("retry_and_fail(%d)", e.Times)
	default:
		return "unknown"
	}
}
