package message

import "context"

// RemoteClient is the transport port. It sends payload to the named remote
// method and returns the decoded response body, or a transport error which
// callers receive unchanged.
type RemoteClient interface {
	Call(ctx context.Context, method string, payload *Payload) (Tree, error)
}
