package asynq

import "time"

// Payload describes a task to enqueue
type Payload struct {
	TaskId    string      // Asynq TaskID metadata
	TaskType  string      // Asynq TaskType metadata
	Data      interface{} // The Task Payload (JSON)
	ProcessAt time.Time   // Zero means run as soon as possible
}
