package queue

import (
	"encoding/json"

	"github.com/zaika-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderEvent 订单事件通知任务
	TaskOrderEvent = constants.TaskOrderEvent
)

// OrderEventPayload 订单事件任务载荷
type OrderEventPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	Event   string `json:"event"`
	Status  string `json:"status,omitempty"`
}

// NewOrderEventTask 创建订单事件任务
func NewOrderEventTask(payload OrderEventPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderEvent, body), nil
}
