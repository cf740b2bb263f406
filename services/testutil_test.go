package services

import (
	"fmt"
	"strings"
	"testing"

	"hotel-booking-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
// cache=shared keeps the database alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.BookingItem{},
		&models.Payment{},
	))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, name, roomType string, rate float64) *models.Room {
	t.Helper()
	room := models.Room{
		Name:        name,
		Type:        roomType,
		RentPerDay:  rate,
		MaxCount:    2,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&room).Error)
	return &room
}

// fakeGateway is an in-memory stand-in for the payment gateway. Orders are
// held in a map and signatures use the real HMAC helper so verify paths run
// the same math as production.
type fakeGateway struct {
	secret    string
	orders    map[string]*GatewayOrder
	createErr error
	nextID    int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{secret: "test_secret", orders: map[string]*GatewayOrder{}}
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func (g *fakeGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	order := &GatewayOrder{
		ID:       fmt.Sprintf("order_test%03d", g.nextID),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	g.orders[order.ID] = order
	return order, nil
}

func (g *fakeGateway) FetchOrder(orderID string) (*GatewayOrder, error) {
	order, ok := g.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return order, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return ComputeSignature(g.secret, orderID, paymentID) == signature
}

// sign produces the signature a real gateway callback would carry.
func (g *fakeGateway) sign(orderID, paymentID string) string {
	return ComputeSignature(g.secret, orderID, paymentID)
}

// markPaid flips the remote order state, as if the customer completed checkout
// but the callback never reached us.
func (g *fakeGateway) markPaid(orderID string) {
	if o, ok := g.orders[orderID]; ok {
		o.Status = "paid"
	}
}
