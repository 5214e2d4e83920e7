package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"storefront/pkg/apperror"
	"storefront/pkg/cart"
	"storefront/pkg/checkout"
	"storefront/pkg/payment"
)

// Menu drives a checkout session from line-oriented input.
type Menu struct {
	session *checkout.Session
	in      *bufio.Scanner
	out     io.Writer
}

// NewMenu creates a Menu reading from in and writing to out.
func NewMenu(session *checkout.Session, in io.Reader, out io.Writer) *Menu {
	return &Menu{session: session, in: bufio.NewScanner(in), out: out}
}

// Run shows the main menu until the shopper exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	err := m.loop(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) loop(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "=== STOREFRONT ===")
		fmt.Fprintln(m.out, "1. View Products")
		fmt.Fprintln(m.out, "2. View Shopping Cart")
		fmt.Fprintln(m.out, "3. View Orders")
		fmt.Fprintln(m.out, "4. Exit")

		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.browse(ctx)
		case "2":
			err = m.viewCart(ctx)
		case "3":
			err = m.viewOrders(ctx)
		case "4":
			fmt.Fprintln(m.out, "Thank you for shopping!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Enter a number from 1 to 4.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) browse(ctx context.Context) error {
	m.printProducts(ctx)
	for {
		code, err := m.prompt("Enter product code to add (0 to return): ")
		if err != nil {
			return err
		}
		code = strings.ToUpper(code)
		if code == "0" {
			return nil
		}
		if len(code) != 3 {
			fmt.Fprintln(m.out, "Product codes are exactly 3 characters.")
			continue
		}
		it, err := m.session.Product(ctx, code)
		if err != nil {
			fmt.Fprintf(m.out, "Product %s not found.\n", code)
			continue
		}

		qty, err := m.promptQuantity("Enter quantity: ")
		if err != nil {
			return err
		}
		if _, err := m.session.AddToCart(ctx, it.ID, qty); err != nil {
			fmt.Fprintf(m.out, "Could not add %s: %v\n", it.Name, err)
		} else {
			fmt.Fprintf(m.out, "Added %d x %s to cart.\n", qty, it.Name)
		}

		more, err := m.promptYesNo("Add another product? (Y/N): ")
		if err != nil || !more {
			return err
		}
	}
}

func (m *Menu) viewCart(ctx context.Context) error {
	view := m.session.Cart(ctx)
	if len(view.Lines) == 0 {
		fmt.Fprintln(m.out, "Your cart is empty. Add products before checking out.")
		return nil
	}
	m.printLines(view.Lines)
	fmt.Fprintf(m.out, "TOTAL: PHP %s\n", view.Total.StringFixed(2))

	ok, err := m.promptYesNo("Proceed to checkout? (Y/N): ")
	if err != nil || !ok {
		return err
	}
	return m.checkout(ctx)
}

func (m *Menu) checkout(ctx context.Context) error {
	view, err := m.session.Review(ctx)
	if err != nil {
		fmt.Fprintf(m.out, "Cannot check out: %v\n", err)
		return nil
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "=== CHECKOUT SUMMARY ===")
	m.printLines(view.Lines)
	fmt.Fprintf(m.out, "TOTAL: PHP %s\n", view.Total.StringFixed(2))

	fmt.Fprintln(m.out, "Select payment method:")
	for i, method := range payment.Methods() {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, method.Name())
	}
	for {
		idx, err := m.promptQuantity("Enter choice: ")
		if err != nil {
			return err
		}
		_, err = m.session.SelectPayment(ctx, idx)
		if errors.Is(err, apperror.ErrInvalidSelection) {
			fmt.Fprintln(m.out, "Invalid payment method. Choose 1, 2 or 3.")
			continue
		}
		if err != nil {
			fmt.Fprintf(m.out, "Cannot check out: %v\n", err)
			return nil
		}
		break
	}

	o, err := m.session.Commit(ctx)
	switch {
	case err == nil:
	case o.ID != 0:
		fmt.Fprintf(m.out, "Order #%d was placed but could not be logged: %v\n", o.ID, err)
		return nil
	case errors.Is(err, apperror.ErrLedgerFull):
		fmt.Fprintln(m.out, "Maximum number of orders reached.")
		return nil
	default:
		fmt.Fprintf(m.out, "Checkout failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(m.out, "Payment of PHP %s via %s successful.\n", o.Total.StringFixed(2), o.PaymentMethod)
	fmt.Fprintf(m.out, "Order #%d completed.\n", o.ID)
	return nil
}

func (m *Menu) viewOrders(ctx context.Context) error {
	orders, err := m.session.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(m.out, "No orders yet.")
		return nil
	}
	fmt.Fprintln(m.out, "=== ORDER HISTORY ===")
	for _, o := range orders {
		fmt.Fprintln(m.out)
		fmt.Fprintf(m.out, "Order ID: %d\n", o.ID)
		fmt.Fprintf(m.out, "Total Amount: PHP %s\n", o.Total.StringFixed(2))
		fmt.Fprintf(m.out, "Payment Method: %s\n", o.PaymentMethod)
		m.printLines(o.Lines)
	}
	return nil
}

func (m *Menu) printProducts(ctx context.Context) {
	tw := tabwriter.NewWriter(m.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, it := range m.session.ListProducts(ctx) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Name, it.Price.StringFixed(2))
	}
	_ = tw.Flush()
}

func (m *Menu) printLines(lines []cart.Line) {
	tw := tabwriter.NewWriter(m.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", l.Item.ID, l.Item.Name, l.Item.Price.StringFixed(2), l.Quantity)
	}
	_ = tw.Flush()
}

// prompt returns the next trimmed input line, or io.EOF when input ends.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// promptQuantity re-prompts until a positive integer is entered.
func (m *Menu) promptQuantity(label string) (int, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			fmt.Fprintln(m.out, "Please enter a positive whole number.")
			continue
		}
		return n, nil
	}
}

// promptYesNo re-prompts until Y or N is entered.
func (m *Menu) promptYesNo(label string) (bool, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(s) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		fmt.Fprintln(m.out, "Please enter Y or N.")
	}
}
