package constants

// Queue priority constants for job processing
const (
	QueueCritical = "critical" // Jobs that change what the public API returns
	QueueDefault  = "default"
	QueueLow      = "low" // Housekeeping
)

// GetAllQueues returns all valid queue names
func GetAllQueues() []string {
	return []string{
		QueueCritical,
		QueueDefault,
		QueueLow,
	}
}

// IsValidQueue checks if queue name is valid
func IsValidQueue(queue string) bool {
	for _, validQueue := range GetAllQueues() {
		if queue == validQueue {
			return true
		}
	}
	return false
}
