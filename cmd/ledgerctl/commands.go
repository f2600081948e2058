package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ledger-backend/internal/models"
	"ledger-backend/internal/session"
	"ledger-backend/internal/workspace"
)

func oneID(args []string, what string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing %s", what)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return id, nil
}

func cmdLogin(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: ledgerctl login <username>")
	}
	resp, err := e.api.Login(ctx, args[0])
	if err != nil {
		return err
	}
	sess := session.Session{Username: resp.Username, Name: resp.Name, Role: session.ParseRole(resp.Role)}
	if err := e.store.Save(sess, resp.Token); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", sess.Name, sess.Role)
	return nil
}

func cmdLogout(_ context.Context, e *env, _ []string) error {
	if err := e.store.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func cmdWhoami(_ context.Context, e *env, _ []string) error {
	fmt.Printf("%s (%s) role=%s\n", e.session.Name, e.session.Username, e.session.Role)
	return nil
}

func cmdClients(ctx context.Context, e *env, args []string) error {
	list := workspace.NewClientList(e.api, e.session)
	if err := list.Load(ctx); err != nil {
		return err
	}
	if len(args) > 0 {
		list.SetQuery(args[0])
	}
	printClients(os.Stdout, list.Visible())
	return nil
}

func cmdClient(ctx context.Context, e *env, args []string) error {
	id, err := oneID(args, "client id")
	if err != nil {
		return err
	}
	detail, err := workspace.OpenClient(ctx, e.api, id)
	if err != nil {
		return err
	}
	printDetail(os.Stdout, detail)
	return nil
}

func cmdHistory(ctx context.Context, e *env, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: ledgerctl history payments|purchases [page]")
	}
	page := 1
	if len(args) > 1 {
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page %q", args[1])
		}
		page = p
	}

	switch args[0] {
	case "payments":
		h := workspace.NewPaymentHistory(e.api)
		if err := h.Load(ctx); err != nil {
			return err
		}
		if err := h.Go(ctx, page); err != nil {
			return err
		}
		printPaymentHistory(os.Stdout, h)
	case "purchases":
		h := workspace.NewPurchaseHistory(e.api)
		if err := h.Load(ctx); err != nil {
			return err
		}
		if err := h.Go(ctx, page); err != nil {
			return err
		}
		printPurchaseHistory(os.Stdout, h)
	default:
		return fmt.Errorf("unknown history %q", args[0])
	}
	return nil
}

func cmdSummary(ctx context.Context, e *env, _ []string) error {
	sum, err := e.api.Summary(ctx)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, *sum)
	return nil
}

func cmdReport(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	archive := fs.Bool("archive", false, "Also store a copy in the report bucket")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneID(fs.Args(), "client id")
	if err != nil {
		return err
	}
	dir := "."
	if fs.NArg() > 1 {
		dir = fs.Arg(1)
	}

	name, pdf, err := e.api.Report(ctx, id, *archive)
	if err != nil {
		return err
	}
	out := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(pdf))
	return nil
}

func cmdAddPayment(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("add-payment", flag.ContinueOnError)
	clientID := fs.Int("client", 0, "Client id")
	date := fs.String("date", "", "Payment date, YYYY-MM-DD")
	unknown := fs.Bool("unknown-date", false, "The date is not known")
	typ := fs.String("type", "", "cash, cheque, virement, versement, traite or inconnue")
	amount := fs.String("amount", "", "Amount, comma or period decimals")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail, err := workspace.OpenClient(ctx, e.api, *clientID)
	if err != nil {
		return err
	}
	p, err := detail.AddPayment(ctx, &models.PaymentRequest{
		Date:        *date,
		DateUnknown: *unknown,
		Type:        models.PaymentType(*typ),
		Amount:      *amount,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Payment %d added.\n", p.ID)
	printClientSummary(os.Stdout, detail.Summary())
	return nil
}

func cmdAddPurchase(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("add-purchase", flag.ContinueOnError)
	clientID := fs.Int("client", 0, "Client id")
	date := fs.String("date", "", "Purchase date, YYYY-MM-DD")
	unknown := fs.Bool("unknown-date", false, "The date is not known")
	qty := fs.String("qty", "", "Quantity")
	typ := fs.String("type", "", "Type label")
	newType := fs.Bool("new-type", false, "Create the type label first")
	class := fs.String("class", "", "Class label")
	newClass := fs.Bool("new-class", false, "Create the class label first")
	weight := fs.String("weight", "", "Weight")
	unitPrice := fs.String("unit-price", "", "Unit price")
	total := fs.String("total", "", "Total price, derived from unit price and weight when omitted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail, err := workspace.OpenClient(ctx, e.api, *clientID)
	if err != nil {
		return err
	}

	draft := workspace.NewPurchaseDraft()
	draft.Date, draft.DateUnknown, draft.Quantity = *date, *unknown, *qty
	draft.Type, draft.Class = *typ, *class
	draft.Price.SetUnitPrice(*unitPrice)
	draft.Price.SetWeight(*weight)
	if *total != "" {
		draft.Price.SetTotal(*total)
	}

	if *newType {
		if _, err := detail.CreateType(ctx, *typ, draft); err != nil {
			return err
		}
	}
	if *newClass {
		if _, err := detail.CreateClass(ctx, *class, draft); err != nil {
			return err
		}
	}

	p, err := detail.AddPurchase(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Printf("Purchase %d added.\n", p.ID)
	printClientSummary(os.Stdout, detail.Summary())
	return nil
}

func cmdDeleteClient(ctx context.Context, e *env, args []string) error {
	id, err := oneID(args, "client id")
	if err != nil {
		return err
	}
	list := workspace.NewClientList(e.api, e.session)
	if err := list.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Client %d deleted.\n", id)
	return nil
}
