package worker

import (
	"context"
	"encoding/json"

	"github.com/zaika-next/internal/logger"
	"github.com/zaika-next/internal/provider"
	"github.com/zaika-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderEvent, c.handleOrderEvent)
}

// handleOrderEvent 订单事件通知处理
// 事件仅用于下游通知链路（打印、短信对接等后续消费方），失败会按队列策略重试。
func (c *Consumer) handleOrderEvent(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_event_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_event_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_event_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_event_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_event_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	logger.Infow("worker_order_event_processed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"event", payload.Event,
		"status", order.Status,
		"total_amount", order.TotalAmount,
	)
	return nil
}
