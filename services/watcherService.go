package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/interfaces"
	"github.com/uncountedbug0615/delivery-app-otp-verifier/models"
)

// OrderWatcher polls for newly confirmed orders and fans a push out to every
// registered admin device. The watermark (lastChecked) is owned by the
// watcher instance, so several independent watchers could run side by side.
type OrderWatcher struct {
	Orders   OrderStore
	Devices  DeviceStore
	Push     interfaces.PushNotifier
	Interval time.Duration

	now         func() time.Time
	lastChecked time.Time
}

func NewOrderWatcher(orders OrderStore, devices DeviceStore, push interfaces.PushNotifier, interval time.Duration) *OrderWatcher {
	w := &OrderWatcher{
		Orders:   orders,
		Devices:  devices,
		Push:     push,
		Interval: interval,
		now:      time.Now,
	}
	w.lastChecked = w.now()
	return w
}

// Start runs the polling loop until ctx is cancelled.
func (w *OrderWatcher) Start(ctx context.Context) {
	log.Printf("Order watcher running every %s", w.Interval)
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// scan performs one tick: query the window, fan out, advance the watermark.
// The watermark advances even when the query or the token listing fails, so
// an order confirmed during a failed tick is dropped rather than retried.
// The lower bound is inclusive, so an order stamped exactly at the watermark
// can be picked up twice; a duplicate push is accepted over a missed one.
func (w *OrderWatcher) scan(ctx context.Context) {
	windowStart := w.lastChecked
	defer func() {
		w.lastChecked = w.now()
	}()

	orders, err := w.Orders.FindConfirmedSince(ctx, windowStart)
	if err != nil {
		log.Printf("Order scan failed: %v", err)
		return
	}
	if len(orders) == 0 {
		return
	}

	tokens, err := w.Devices.ListTokens(ctx)
	if err != nil {
		log.Printf("Cannot list admin tokens: %v", err)
		return
	}
	if len(tokens) == 0 {
		log.Printf("%d new order(s) but no admin device registered", len(orders))
		return
	}

	// Every order×token pair is dispatched concurrently and independently;
	// a failed send never suppresses the others. The tick only completes
	// once every send has settled.
	var wg sync.WaitGroup
	for _, order := range orders {
		for _, token := range tokens {
			wg.Add(1)
			go func(order models.Order, token string) {
				defer wg.Done()
				w.notify(ctx, order, token)
			}(order, token)
		}
	}
	wg.Wait()
}

func (w *OrderWatcher) notify(ctx context.Context, order models.Order, token string) {
	title := "🧁 New Order Confirmed"
	body := fmt.Sprintf("Order #%s · ₹%.2f", OrderRef(order.ID), order.Total)
	data := map[string]string{
		"screen":  "orders",
		"orderId": order.ID,
	}
	if err := w.Push.Notify(ctx, token, title, body, data); err != nil {
		log.Printf("Push for order %s failed: %v", order.ID, err)
	}
}
