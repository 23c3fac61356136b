// Package dispatch owns the per-order courier state machine: an order is
// not sent until a consignment exists, and it never goes back.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/honeynutbd/landing_shop/internal/bdmobile"
	"github.com/honeynutbd/landing_shop/internal/courier"
	"github.com/honeynutbd/landing_shop/internal/logging"
	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
	"github.com/honeynutbd/landing_shop/internal/service/settings"
)

var (
	ErrNotConfigured = errors.New("courier API keys are not configured")
	ErrNotDispatched = errors.New("order not sent to courier yet")
	ErrDispatch      = errors.New("courier dispatch failed")
	ErrStatusQuery   = errors.New("courier status query failed")
)

const callTimeout = 10 * time.Second

// CourierClient is the outbound API surface dispatch needs; satisfied by
// *courier.Client.
type CourierClient interface {
	CreateOrder(ctx context.Context, creds courier.Credentials, req courier.CreateOrderRequest) (*courier.Consignment, error)
	Status(ctx context.Context, creds courier.Credentials, consignmentID string) (string, error)
}

type Coordinator struct {
	Client   CourierClient
	Repo     *repo.GormRepo
	Settings *settings.Service
}

type Result struct {
	ConsignmentID string
	Status        string
	AlreadySent   bool
}

// Dispatch sends an order to the courier at most once. A second call on a
// dispatched order is a no-op returning the stored consignment id; on any
// failure the order stays unsent so a retry is safe.
func (c *Coordinator) Dispatch(ctx context.Context, order *models.Order) (*Result, error) {
	creds, err := c.creds(ctx)
	if err != nil {
		return nil, err
	}

	if order.ConsignmentID != "" {
		return &Result{
			ConsignmentID: order.ConsignmentID,
			Status:        order.CourierStatus,
			AlreadySent:   true,
		}, nil
	}

	payload := courier.CreateOrderRequest{
		Invoice:          fmt.Sprintf("HT-%d", order.ID),
		RecipientName:    order.FullName,
		RecipientPhone:   bdmobile.LastEleven(order.MobileNumber),
		RecipientAddress: order.ShippingAddress,
		CODAmount:        order.TotalPrice,
		Note:             fmt.Sprintf("Qty: %d", order.Quantity),
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	consignment, err := c.Client.CreateOrder(callCtx, creds, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDispatch, err)
	}

	claimed, err := c.Repo.ClaimConsignment(ctx, order.ID, consignment.ID, consignment.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDispatch, err)
	}
	if !claimed {
		// a concurrent dispatch won the conditional update; report its
		// consignment instead of the one we just created
		stored, err := c.Repo.GetOrder(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDispatch, err)
		}
		order.ConsignmentID = stored.ConsignmentID
		order.CourierStatus = stored.CourierStatus
		return &Result{
			ConsignmentID: stored.ConsignmentID,
			Status:        stored.CourierStatus,
			AlreadySent:   true,
		}, nil
	}

	order.ConsignmentID = consignment.ID
	order.CourierStatus = consignment.Status
	return &Result{ConsignmentID: consignment.ID, Status: consignment.Status}, nil
}

// RefreshStatus queries the courier for an order's delivery status and
// overwrites the stored one. A failed query leaves the prior status alone.
func (c *Coordinator) RefreshStatus(ctx context.Context, order *models.Order) (string, error) {
	if order.ConsignmentID == "" {
		return "", ErrNotDispatched
	}

	creds, err := c.creds(ctx)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	status, err := c.Client.Status(callCtx, creds, order.ConsignmentID)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrStatusQuery, err)
	}

	if err := c.Repo.UpdateCourierStatus(ctx, order.ID, status); err != nil {
		return "", fmt.Errorf("%w: %s", ErrStatusQuery, err)
	}
	order.CourierStatus = status
	return status, nil
}

// IsTerminal reports whether a courier status needs no further polling.
func IsTerminal(status string) bool {
	switch strings.ToLower(status) {
	case "delivered", "cancelled":
		return true
	}
	return false
}

// BulkRefresh walks every dispatched, non-terminal order and refreshes its
// status. One order's failure never aborts the batch; the return values
// report how many orders were seen and how many actually updated.
func (c *Coordinator) BulkRefresh(ctx context.Context) (processed, updated int, err error) {
	if _, err := c.creds(ctx); err != nil {
		return 0, 0, err
	}

	orders, err := c.Repo.ActiveConsignments(ctx)
	if err != nil {
		return 0, 0, err
	}

	l := logging.FromContext(ctx).With("svc", "dispatch.bulk_refresh")
	for i := range orders {
		if _, err := c.RefreshStatus(ctx, &orders[i]); err != nil {
			l.Warn("status refresh failed", "order_id", orders[i].ID, "consignment_id", orders[i].ConsignmentID, "error", err)
			continue
		}
		updated++
	}
	return len(orders), updated, nil
}

func (c *Coordinator) creds(ctx context.Context) (courier.Credentials, error) {
	apiKey, secretKey, err := c.Settings.CourierCreds(ctx)
	if err != nil {
		return courier.Credentials{}, err
	}
	creds := courier.Credentials{APIKey: apiKey, SecretKey: secretKey}
	if creds.Empty() {
		return courier.Credentials{}, ErrNotConfigured
	}
	return creds, nil
}
