package service

import "context"

// Events publishes domain events. Satisfied by mykafka.Producer; nil
// disables publishing.
type Events interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}
