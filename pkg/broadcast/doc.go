// Package broadcast provides type-safe message fan-out to multiple
// subscribers, used to propagate authentication and authorization state
// changes to interested components.
//
// Two implementations are provided:
//
//   - MemoryBroadcaster: in-process fan-out with per-subscriber buffers.
//     Slow consumers get messages dropped rather than blocking publishers.
//   - RedisBroadcaster: cross-instance fan-out over a Redis pub/sub channel
//     with JSON-encoded payloads.
//
// Usage:
//
//	bc := broadcast.NewMemoryBroadcaster[string](16)
//	defer bc.Close()
//
//	sub := bc.Subscribe(ctx)
//	go func() {
//	    for msg := range sub.Receive(ctx) {
//	        fmt.Println(msg.Data)
//	    }
//	}()
//
//	bc.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
package broadcast
