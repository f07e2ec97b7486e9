package worker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/events"
	"github.com/theyeesha/physioreact/internal/notifier"
)

// NotificationWriter persists notification rows for users.
type NotificationWriter interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// AdminDirectory resolves the administrative broadcast audience.
type AdminDirectory interface {
	ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	UseDLX      bool
	DLXName     string
	DLXQueue    string
	ServiceName string
}

// Consumer turns scheduler events into notification rows. It is the
// notification sink: the scheduler never writes these rows itself.
type Consumer struct {
	cfg      Config
	store    NotificationWriter
	admins   AdminDirectory
	notifier notifier.Notifier
	log      *zap.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, store NotificationWriter, admins AdminDirectory, n notifier.Notifier, log *zap.Logger) *Consumer {
	return &Consumer{cfg: cfg, store: store, admins: admins, notifier: n, log: log}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	args := amqp.Table{}
	if c.cfg.UseDLX {
		args["x-dead-letter-exchange"] = c.cfg.DLXName
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange failed: %w", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind key=%s failed: %w", key, err)
		}
	}

	if c.cfg.UseDLX {
		if err := ch.ExchangeDeclare(c.cfg.DLXName, "topic", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlx failed: %w", err)
		}
		if _, err := ch.QueueDeclare(c.cfg.DLXQueue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlq failed: %w", err)
		}
		if err := ch.QueueBind(c.cfg.DLXQueue, "#", c.cfg.DLXName, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind dlq failed: %w", err)
		}
	}

	if c.cfg.Prefetch <= 0 {
		c.cfg.Prefetch = 8
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.HandleDelivery(ctx, d); err != nil {
				c.log.Warn("handle failed, requeueing",
					zap.String("key", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) HandleDelivery(ctx context.Context, d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKShiftAssigned:
		ev, err := events.MustUnmarshal[events.ShiftAssigned](d.Body)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("You have been assigned a new shift on %s at %s",
			notifier.HumanShift(ev.Date, ev.Start, ev.End), ev.Location)
		return c.write(ctx, ev.UserID, "New Schedule Assigned", msg, domain.SeverityInfo)

	case events.RKSwapRequested:
		ev, err := events.MustUnmarshal[events.SwapRequested](d.Body)
		if err != nil {
			return err
		}
		// Administrative broadcast: every active admin gets a row, not
		// one fixed account.
		admins, err := c.admins.ListActiveByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		for _, a := range admins {
			if err := c.write(ctx, a.ID, "New Swap Request",
				"A new shift swap request has been submitted and requires approval",
				domain.SeverityWarning); err != nil {
				return err
			}
		}
		_ = c.notifier.Notify("New Swap Request",
			fmt.Sprintf("swap %s (%s) awaits approval", ev.SwapID, ev.SwapType))
		return nil

	case events.RKSwapApproved:
		ev, err := events.MustUnmarshal[events.SwapDecided](d.Body)
		if err != nil {
			return err
		}
		if err := c.write(ctx, ev.RequesterID, "Swap Request Update",
			"Your swap request has been approved and schedules have been updated",
			domain.SeveritySuccess); err != nil {
			return err
		}
		return c.write(ctx, ev.TargetID, "Swap Request Approved",
			"A swap request involving your schedule has been approved and your schedule has been updated",
			domain.SeveritySuccess)

	case events.RKSwapRejected:
		ev, err := events.MustUnmarshal[events.SwapDecided](d.Body)
		if err != nil {
			return err
		}
		return c.write(ctx, ev.RequesterID, "Swap Request Update",
			"Your swap request has been rejected", domain.SeverityError)

	default:
		c.log.Debug("skip unknown routing key", zap.String("key", d.RoutingKey))
		return nil
	}
}

func (c *Consumer) write(ctx context.Context, userID, title, message string, sev domain.Severity) error {
	return c.store.Create(ctx, &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    sev,
	})
}
