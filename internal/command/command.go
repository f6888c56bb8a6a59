package command

import "context"

type Client interface {
	// HandleCommand listens for operator chat commands until ctx is done or the update stream closes.
	HandleCommand(ctx context.Context) error
}
