package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brojonat/gofferup/offerup"
)

const divider = "============================================================"

func formatListing(rec *offerup.ListingRecord, format string) (string, error) {
	switch format {
	case "json":
		return formatListingJSON(rec)
	case "text":
		return formatListingText(rec), nil
	case "csv":
		return formatListingCSV(rec)
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func formatListingJSON(rec *offerup.ListingRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// preserve non-ASCII characters in titles and descriptions
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func formatListingText(rec *offerup.ListingRecord) string {
	var b strings.Builder
	b.WriteString(divider + "\n")
	b.WriteString("LISTING DETAILS\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "Title: %s\n", valueOr(rec.Title))
	fmt.Fprintf(&b, "Price: $%s\n", valueOr(rec.Price))
	fmt.Fprintf(&b, "Location: %s\n", valueOr(rec.Location))
	fmt.Fprintf(&b, "Seller: %s\n", valueOr(rec.SellerName))
	fmt.Fprintf(&b, "Listing ID: %s\n", valueOr(rec.ListingID))
	b.WriteString("\nDescription:\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	b.WriteString(valueOr(rec.Description) + "\n")
	b.WriteString("\nImage URL:\n")
	b.WriteString(valueOr(deref(rec.FirstImageURL)) + "\n")
	if rec.DownloadedImagePath != nil {
		b.WriteString("\nDownloaded Image:\n")
		b.WriteString(*rec.DownloadedImagePath + "\n")
	}
	b.WriteString("\n" + divider)
	return b.String()
}

func formatListingCSV(rec *offerup.ListingRecord) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"title", "price", "location", "seller_name", "listing_id", "description", "first_image_url", "downloaded_image_path"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	// embedded newlines would break single-row consumers
	desc := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(rec.Description)
	row := []string{
		rec.Title,
		rec.Price,
		rec.Location,
		rec.SellerName,
		rec.ListingID,
		desc,
		deref(rec.FirstImageURL),
		deref(rec.DownloadedImagePath),
	}
	if err := w.Write(row); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func valueOr(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
