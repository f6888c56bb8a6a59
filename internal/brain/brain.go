package brain

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=brain.go -destination=mocks/mock.go
type Client interface {
	// GenerateReply drafts an answer to a customer message using the page profile as context.
	GenerateReply(ctx context.Context, userText, profileContext string) (string, error)
}
