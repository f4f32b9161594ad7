package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	apiclient "github.com/rmarques/game-deal-tracker/internal/api/client"
	domain "github.com/rmarques/game-deal-tracker/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printGameTable(games []domain.Game) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("IDENTIFIER\tTITLE\tPLATFORM\tPRICE\tDISCOUNT\n")
	for i := range games {
		g := &games[i]
		discount := "-"
		if g.Discounted() {
			discount = fmt.Sprintf("%d%%", g.DiscountPercent)
		}
		tw.writef("%s\t%s\t%s\t%.2f\t%s\n",
			g.Identifier,
			truncate(g.Title, 40),
			g.Platform,
			g.DiscountedPrice,
			discount,
		)
	}
	return tw.finish()
}

func printGameDetail(g *domain.Game) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Identifier:\t%s\n", g.Identifier)
	tw.writef("Title:\t%s\n", g.Title)
	tw.writef("Platform:\t%s\n", g.Platform)
	tw.writef("Price:\t%.2f\n", g.DiscountedPrice)
	tw.writef("Full Price:\t%.2f\n", g.InitialPrice)
	tw.writef("Discount:\t%d%%\n", g.DiscountPercent)
	tw.writef("URL:\t%s\n", g.URL)
	return tw.finish()
}

func printWishlistTable(items []apiclient.WishlistItem) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("PLATFORM\tIDENTIFIER\tTITLE\tPRICE\tDISCOUNT\tADDED\n")
	for i := range items {
		title, price, discount := "-", "-", "-"
		if g := items[i].Game; g != nil {
			title = truncate(g.Title, 40)
			price = fmt.Sprintf("%.2f", g.DiscountedPrice)
			if g.Discounted() {
				discount = fmt.Sprintf("%d%%", g.DiscountPercent)
			}
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			items[i].Platform,
			items[i].PlatformIdentifier,
			title,
			price,
			discount,
			items[i].CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func printReviewDetail(r *domain.Review) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", r.ID)
	tw.writef("Game:\t%s\n", r.GameName)
	tw.writef("AI Generated:\t%v\n", r.AIGenerated)
	tw.writef("Updated:\t%s\n", r.UpdatedAt.Format("2006-01-02 15:04:05"))
	tw.writef("\n%s\n", r.Content)
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
