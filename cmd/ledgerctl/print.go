package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ledger-backend/internal/format"
	"ledger-backend/internal/models"
	"ledger-backend/internal/paging"
	"ledger-backend/internal/workspace"
)

func table(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func printClients(w io.Writer, clients []models.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(w, "Aucun client trouvé.")
		return
	}
	tw := table(w, "ID", "Nom", "Téléphone", "Adresse")
	for _, c := range clients {
		row(tw, fmt.Sprint(c.ID), c.FullName, c.PhoneNumber, c.Address)
	}
	tw.Flush()
}

// printSummary shows the dashboard totals with two decimals.
func printSummary(w io.Writer, s models.Summary) {
	printTotals(w, s.TotalPurchasesText, s.TotalPaymentsText, s.BalanceText, s.Negative)
}

// printClientSummary shows one client's totals the way amounts are shown elsewhere
// on the detail view, without padded decimals.
func printClientSummary(w io.Writer, s models.Summary) {
	printTotals(w, format.FormatCurrency(s.TotalPurchases), format.FormatCurrency(s.TotalPayments),
		format.FormatCurrency(s.Balance), s.Negative)
}

func printTotals(w io.Writer, purchases, payments, balance string, negative bool) {
	fmt.Fprintf(w, "Total Achats:     %s DH\n", purchases)
	fmt.Fprintf(w, "Total Paiements:  %s DH\n", payments)
	rest := fmt.Sprintf("Le Reste:         %s DH", balance)
	if negative {
		rest += "  (négatif)"
	}
	fmt.Fprintln(w, rest)
}

func detailDate(d *string) string {
	return format.FormatDisplayDate(d, d == nil, format.SurfaceDetail)
}

func printDetail(w io.Writer, d *workspace.ClientDetail) {
	fmt.Fprintf(w, "%s\n", d.Client.FullName)
	fmt.Fprintf(w, "Téléphone: %s\nAdresse:   %s\n\n", d.Client.PhoneNumber, d.Client.Address)
	printClientSummary(w, d.Summary())

	fmt.Fprintln(w, "\nPaiements")
	payments := d.SortedPayments()
	if len(payments) == 0 {
		fmt.Fprintln(w, "Aucun paiement trouvé.")
	} else {
		tw := table(w, "ID", "Date", "Type", "Paiement (DH)")
		for _, p := range payments {
			row(tw, fmt.Sprint(p.ID), detailDate(p.Date), string(p.Type), format.FormatCurrency(p.Amount))
		}
		tw.Flush()
	}

	fmt.Fprintln(w, "\nAchats")
	purchases := d.SortedPurchases()
	if len(purchases) == 0 {
		fmt.Fprintln(w, "Aucun achat trouvé.")
		return
	}
	tw := table(w, "ID", "Date", "Qté", "Type", "Classe", "Poids", "Prix unitaire", "Prix total")
	for _, p := range purchases {
		row(tw, fmt.Sprint(p.ID), detailDate(p.Date), format.FormatCurrency(p.Quantity), p.Type, p.Class,
			format.FormatCurrency(p.Weight), format.FormatCurrency(p.UnitPrice), format.FormatCurrency(p.TotalPrice))
	}
	tw.Flush()
}

func historyDate(d *string) string {
	return format.FormatDisplayDate(d, d == nil, format.SurfaceHistory)
}

func printControls(w io.Writer, page int, ctl paging.Controls, ok bool) {
	if !ok {
		return
	}
	var parts []string
	if ctl.First {
		parts = append(parts, "1")
		if ctl.LeadingGap {
			parts = append(parts, "…")
		}
	}
	for _, p := range ctl.Pages {
		if p == page {
			parts = append(parts, fmt.Sprintf("[%d]", p))
		} else {
			parts = append(parts, fmt.Sprint(p))
		}
	}
	if ctl.Last {
		if ctl.TrailingGap {
			parts = append(parts, "…")
		}
		parts = append(parts, fmt.Sprint(ctl.TotalPages))
	}
	fmt.Fprintf(w, "\nPages: %s\n", strings.Join(parts, " "))
}

func printPaymentHistory(w io.Writer, h *workspace.History[models.Payment]) {
	page := h.Page()
	tw := table(w, "Date", "Client", "Type", "Paiement (DH)")
	for _, p := range page.Items {
		row(tw, historyDate(p.Date), p.ClientName, string(p.Type), format.FormatWhole(p.Amount))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d paiements\n", page.TotalCount)
	ctl, ok := h.Controls()
	printControls(w, page.Page, ctl, ok)
}

func printPurchaseHistory(w io.Writer, h *workspace.History[models.Purchase]) {
	page := h.Page()
	tw := table(w, "Date", "Client", "Qté", "Type", "Classe", "Poids", "Prix unitaire", "Prix total")
	for _, p := range page.Items {
		row(tw, historyDate(p.Date), p.ClientName, format.FormatWhole(p.Quantity), p.Type, p.Class,
			format.FormatWhole(p.Weight), format.FormatWhole(p.UnitPrice), format.FormatWhole(p.TotalPrice))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d achats\n", page.TotalCount)
	ctl, ok := h.Controls()
	printControls(w, page.Page, ctl, ok)
}
