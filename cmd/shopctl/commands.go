package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tgshop/miniapp-backend/internal/cart"
	"github.com/tgshop/miniapp-backend/internal/catalog"
	"github.com/tgshop/miniapp-backend/internal/checkout"
	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/logger"
)

type options struct {
	cmd      string
	id       int64
	ids      string
	qty      int
	name     string
	phone    string
	userID   int64
	username string
}

type productSource interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

type checkouter interface {
	Checkout(ctx context.Context, store checkout.CartStore, who checkout.Identity, name, phone string) (*checkout.Receipt, error)
}

type shop struct {
	store    *cart.Store
	catalog  productSource
	checkout checkouter
	out      io.Writer
	logg     *logger.Logger
}

func (s *shop) run(ctx context.Context, opts options) error {
	switch opts.cmd {
	case "products":
		return s.listProducts(ctx)
	case "show":
		s.show()
		return nil
	case "add":
		return s.add(ctx, opts.id)
	case "remove":
		return s.mutate(ctx, opts.id, s.store.Remove)
	case "set":
		return s.mutate(ctx, opts.id, func(ctx context.Context, id int64) error {
			return s.store.UpdateQuantity(ctx, id, opts.qty)
		})
	case "inc":
		return s.mutate(ctx, opts.id, s.store.Increment)
	case "dec":
		if opts.id != 0 && !s.store.CanDecrement(opts.id) {
			fmt.Fprintln(s.out, "quantity is already 1")
			return nil
		}
		return s.mutate(ctx, opts.id, s.store.Decrement)
	case "clear":
		if err := s.store.Clear(ctx); err != nil {
			return err
		}
		s.show()
		return nil
	case "delete":
		return s.deleteSelected(ctx, opts.ids)
	case "checkout":
		return s.submit(ctx, opts)
	}
	return fmt.Errorf("unknown command %q", opts.cmd)
}

func (s *shop) listProducts(ctx context.Context) error {
	if s.catalog == nil {
		return errors.New("catalog url not configured")
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(s.out, "No products found.")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t$%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Description)
	}
	return tw.Flush()
}

func (s *shop) show() {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, "Your cart is empty.")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tLINE")
	for _, item := range s.store.Items() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t$%s\t$%s\n", item.ID, item.Name, item.Quantity, item.Price.StringFixed(2), item.LineTotal().StringFixed(2))
	}
	_ = tw.Flush()
	fmt.Fprintf(s.out, "Items: %d  Total: $%s\n", s.store.Quantity(), s.store.Total().StringFixed(2))
}

func (s *shop) add(ctx context.Context, id int64) error {
	if id == 0 {
		return errors.New("-id is required")
	}
	if s.catalog == nil {
		return errors.New("catalog url not configured")
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return err
	}
	product, ok := catalog.Find(products, id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
	}
	if err := s.store.Add(ctx, product.CartItem()); err != nil {
		return err
	}
	s.show()
	return nil
}

func (s *shop) mutate(ctx context.Context, id int64, fn func(context.Context, int64) error) error {
	if id == 0 {
		return errors.New("-id is required")
	}
	if err := fn(ctx, id); err != nil {
		return err
	}
	s.show()
	return nil
}

func (s *shop) deleteSelected(ctx context.Context, raw string) error {
	var sel cart.Selection
	sel.Enter()
	defer sel.Exit()

	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return errors.New("-ids is required")
	case "all":
		sel.SelectAll(s.store.IDs())
	default:
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", part)
			}
			if !sel.Contains(id) {
				sel.Toggle(id)
			}
		}
	}

	if err := sel.DeleteSelected(ctx, s.store); err != nil {
		return err
	}
	s.show()
	return nil
}

func (s *shop) submit(ctx context.Context, opts options) error {
	if s.checkout == nil {
		return errors.New("checkout not configured")
	}
	if opts.userID == 0 {
		return errors.New("-user-id is required")
	}
	receipt, err := s.checkout.Checkout(ctx, s.store, checkout.Identity{
		UserID:   opts.userID,
		Username: opts.username,
	}, opts.name, opts.phone)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Order sent to admin! Your order id is %s.\n", receipt.OrderID)
	return nil
}
