package usecase

import "context"

type EmbedderInfra interface {
	EmbedText(ctx context.Context, req *EmbedReq) (*EmbedRes, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
