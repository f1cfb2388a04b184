package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	orders map[uuid.UUID]*Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[uuid.UUID]*Order)}
}

func (f *fakeRepo) CreateOrder(_ context.Context, o *Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeRepo) GetOrderByID(_ context.Context, supplierID uuid.UUID, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, ok := f.orders[uid]
	if !ok || o.SupplierID != supplierID {
		return nil, errors.New("no rows")
	}
	return o, nil
}

func (f *fakeRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID, status string) ([]*Order, error) {
	var out []*Order
	for _, o := range f.orders {
		if o.SupplierID == supplierID && (status == "" || string(o.Status) == status) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, supplierID uuid.UUID, id string, status OrderStatus) error {
	o, err := f.GetOrderByID(context.Background(), supplierID, id)
	if err != nil {
		return err
	}
	o.Status = status
	return nil
}

func intakeOne(t *testing.T, svc Service, supplierID uuid.UUID) *Order {
	t.Helper()
	o, err := svc.Intake(context.Background(), IntakeRequest{
		SupplierID:  supplierID.String(),
		OrderNumber: "ORD-1001",
		Items: []IntakeItem{
			{ProductID: uuid.NewString(), Quantity: 2, UnitPrice: 9.5},
			{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 18},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestIntakeComputesTotals(t *testing.T) {
	svc := NewService(newFakeRepo())
	o := intakeOne(t, svc, uuid.New())

	if o.Status != StatusPending {
		t.Fatalf("status = %s, want PENDING", o.Status)
	}
	if o.Subtotal != 37 || o.Total != 37 {
		t.Fatalf("subtotal/total = %v/%v, want 37/37", o.Subtotal, o.Total)
	}
	if len(o.Items) != 2 || o.Items[0].LineTotal != 19 {
		t.Fatalf("items mis-built: %+v", o.Items)
	}
}

func TestIntakeValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	tests := []struct {
		name string
		req  IntakeRequest
		want string
	}{
		{"no items", IntakeRequest{SupplierID: uuid.NewString(), OrderNumber: "N-1"}, "at least one item"},
		{"no number", IntakeRequest{SupplierID: uuid.NewString(), Items: []IntakeItem{{ProductID: uuid.NewString(), Quantity: 1}}}, "order_number"},
		{"zero quantity", IntakeRequest{SupplierID: uuid.NewString(), OrderNumber: "N-1", Items: []IntakeItem{{ProductID: uuid.NewString(), Quantity: 0}}}, "quantity"},
		{"bad supplier", IntakeRequest{SupplierID: "nope", OrderNumber: "N-1", Items: []IntakeItem{{ProductID: uuid.NewString(), Quantity: 1}}}, "supplier_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Intake(context.Background(), tt.req); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	supplierID := uuid.New()
	svc := NewService(newFakeRepo())
	o := intakeOne(t, svc, supplierID)

	for _, next := range []string{"confirmed", "shipped", "delivered"} {
		updated, err := svc.UpdateStatus(context.Background(), supplierID, o.ID.String(), UpdateStatusRequest{Status: next})
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if string(updated.Status) != strings.ToUpper(next) {
			t.Fatalf("status = %s", updated.Status)
		}
	}

	// Delivered is terminal.
	if _, err := svc.UpdateStatus(context.Background(), supplierID, o.ID.String(), UpdateStatusRequest{Status: "CANCELLED"}); err == nil {
		t.Fatal("delivered order must not transition")
	}
}

func TestCancelOnlyEarlyStatuses(t *testing.T) {
	supplierID := uuid.New()
	svc := NewService(newFakeRepo())

	o := intakeOne(t, svc, supplierID)
	if err := svc.CancelOrder(context.Background(), supplierID, o.ID.String()); err != nil {
		t.Fatalf("pending order should cancel: %v", err)
	}

	o2 := intakeOne(t, svc, supplierID)
	svc.UpdateStatus(context.Background(), supplierID, o2.ID.String(), UpdateStatusRequest{Status: "CONFIRMED"})
	svc.UpdateStatus(context.Background(), supplierID, o2.ID.String(), UpdateStatusRequest{Status: "SHIPPED"})
	if err := svc.CancelOrder(context.Background(), supplierID, o2.ID.String()); err == nil {
		t.Fatal("shipped order must not cancel")
	}
}
