package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotel-booking-backend/models"
)

// Reconciler periodically sweeps payments stuck in non-terminal states. The
// booking/payment flow commits each step independently, so a crash or an
// abandoned checkout can strand an order in "created" forever; the sweep pulls
// the truth from the gateway and settles the row one way or the other.
type Reconciler struct {
	Payments *PaymentService

	Interval     time.Duration // how often to sweep
	StaleAfter   time.Duration // how old an open order must be before we look at it
	AbandonAfter time.Duration // when an unpaid order is declared expired
}

func NewReconciler(payments *PaymentService) *Reconciler {
	return &Reconciler{
		Payments:     payments,
		Interval:     2 * time.Minute,
		StaleAfter:   15 * time.Minute,
		AbandonAfter: 24 * time.Hour,
	}
}

// Run blocks until ctx is cancelled, sweeping on a ticker.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	log.Printf("🔁 payment reconciler started (interval=%s stale=%s abandon=%s)",
		r.Interval, r.StaleAfter, r.AbandonAfter)

	for {
		select {
		case <-ctx.Done():
			log.Println("🔁 payment reconciler stopped")
			return
		case <-ticker.C:
			if err := r.Sweep(); err != nil {
				log.Printf("❌ reconcile sweep failed: %v", err)
			}
		}
	}
}

// Sweep processes one batch of stale open orders.
func (r *Reconciler) Sweep() error {
	now := time.Now()
	cutoff := now.Add(-r.StaleAfter)

	var stale []models.Payment
	if err := r.Payments.DB.
		Where("status IN ? AND updated_at < ?",
			[]string{models.OrderStatusCreated, models.OrderStatusAttempted}, cutoff).
		Order("id").
		Limit(50).
		Find(&stale).Error; err != nil {
		return fmt.Errorf("failed to load stale payments: %w", err)
	}

	for i := range stale {
		if err := r.reconcileOne(&stale[i], now); err != nil {
			log.Printf("⚠️ reconcile order %s: %v", stale[i].OrderID, err)
		}
	}

	// Paid-but-unlinked rows cannot be settled automatically; keep them loud.
	var limbo int64
	if err := r.Payments.DB.Model(&models.Payment{}).
		Where("status = ? AND booking_id IS NULL", models.OrderStatusPaid).
		Count(&limbo).Error; err == nil && limbo > 0 {
		log.Printf("⚠️ %d paid payment(s) have no linked booking; manual review needed", limbo)
	}

	return nil
}

func (r *Reconciler) reconcileOne(payment *models.Payment, now time.Time) error {
	order, err := r.Payments.Gateway.FetchOrder(payment.OrderID)
	if err != nil {
		return err
	}

	switch order.Status {
	case "paid":
		// The gateway API is authenticated, so a fetched "paid" is trusted the
		// same way a signed callback is.
		if err := r.Payments.DB.Model(payment).
			Update("status", models.OrderStatusPaid).Error; err != nil {
			return fmt.Errorf("failed to mark payment paid: %w", err)
		}
		payment.Status = models.OrderStatusPaid
		booking, err := r.Payments.finalizePaid(payment, "")
		if err != nil {
			return err
		}
		log.Printf("✅ reconciled order %s -> booking %d paid", payment.OrderID, booking.ID)
		return nil

	case "attempted":
		if payment.Status == models.OrderStatusCreated {
			if err := r.Payments.DB.Model(payment).
				Update("status", models.OrderStatusAttempted).Error; err != nil {
				return fmt.Errorf("failed to mark payment attempted: %w", err)
			}
			payment.Status = models.OrderStatusAttempted
		}
	}

	// Still unpaid: expire once the abandon window has passed.
	if now.Sub(payment.CreatedAt) > r.AbandonAfter {
		if err := r.Payments.DB.Model(payment).
			Update("status", models.OrderStatusExpired).Error; err != nil {
			return fmt.Errorf("failed to expire payment: %w", err)
		}
		if payment.BookingID != nil {
			var booking models.Booking
			if err := r.Payments.DB.First(&booking, *payment.BookingID).Error; err == nil &&
				booking.PaymentStatus == models.PaymentStatusPending {
				if _, err := r.Payments.Bookings.UpdatePaymentStatus(
					booking.ID, models.PaymentStatusNotPaid, nil); err != nil {
					return err
				}
			}
		}
		log.Printf("⏰ expired abandoned order %s", payment.OrderID)
	}

	return nil
}
