// Package pkg holds the Kafka topic names shared across services.
package pkg

const (
	// TopicAliveUpdates carries one message per leaderboard write.
	TopicAliveUpdates = "alive-updates"
)
