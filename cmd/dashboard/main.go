// Command dashboard is a terminal front end for the feedback API: a paginated
// list with filters, a submission form and a delete-confirmation flow.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/feedback-collector/backend/internal/dashboard"
	"github.com/feedback-collector/backend/pkg/client"
)

func main() {
	baseURL := flag.String("api", "http://localhost:8080", "base URL of the feedback API")
	flag.Parse()

	ctrl := dashboard.New(client.New(*baseURL))

	ctrl.Load()
	waitForIdle(ctrl)
	render(ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "", "list", "refresh":
			ctrl.Load()
		case "search":
			ctrl.SetSearch(arg)
			// let the debounced refetch fire before rendering
			time.Sleep(dashboard.DefaultDebounce + 50*time.Millisecond)
		case "category":
			ctrl.SetCategory(arg)
		case "from":
			ctrl.SetStartDate(arg)
		case "to":
			ctrl.SetEndDate(arg)
		case "clear":
			ctrl.ClearFilters()
		case "page":
			if n, err := strconv.Atoi(arg); err == nil {
				ctrl.GoToPage(n)
			}
		case "next":
			ctrl.GoToPage(ctrl.Pagination().CurrentPage + 1)
		case "prev":
			ctrl.GoToPage(ctrl.Pagination().CurrentPage - 1)
		case "add":
			submitForm(ctrl, scanner)
		case "delete":
			deleteRecord(ctrl, scanner, arg)
		case "help":
			printHelp()
			continue
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q (try help)\n", cmd)
			continue
		}

		waitForIdle(ctrl)
		render(ctrl)
	}
}

// waitForIdle blocks until the in-flight fetch settles, so the next render
// shows fresh data.
func waitForIdle(ctrl *dashboard.Controller) {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.State() != dashboard.StateLoading {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func render(ctrl *dashboard.Controller) {
	if msg := ctrl.ListError(); msg != "" {
		fmt.Println("error:", msg)
	}

	p := ctrl.Pagination()
	f := ctrl.Filters()
	fmt.Printf("Feedback Collector — %d total", p.Total)
	if f.Search != "" || f.Category != "all" || f.StartDate != "" || f.EndDate != "" {
		fmt.Printf(" (filtered: search=%q category=%s from=%s to=%s)", f.Search, f.Category, f.StartDate, f.EndDate)
	}
	fmt.Println()

	records := ctrl.Feedback()
	if len(records) == 0 {
		fmt.Println("no feedback to show")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tEMAIL\tRATING\tCATEGORY\tDATE\tMESSAGE")
	for i, fb := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			i+1, fb.Name, fb.Email, fb.Rating, fb.Category,
			fb.CreatedAt.Local().Format("Jan 2 2006 15:04"), truncate(fb.Message, 48))
	}
	w.Flush()
	fmt.Printf("Page %d of %d\n", p.CurrentPage, p.TotalPages)
}

func submitForm(ctrl *dashboard.Controller, scanner *bufio.Scanner) {
	ctrl.OpenForm()
	form := dashboard.NewForm()
	form.Name = prompt(scanner, "Name")
	form.Email = prompt(scanner, "Email")
	form.Message = prompt(scanner, "Message")
	if rating := prompt(scanner, "Rating (1-5, blank for 5)"); rating != "" {
		if n, err := strconv.Atoi(rating); err == nil {
			form.Rating = n
		}
	}
	if category := prompt(scanner, "Category (blank for general)"); category != "" {
		form.Category = category
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ctrl.SubmitForm(ctx, form); err != nil {
		for field, msg := range ctrl.FormErrors() {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		if banner := ctrl.FormBanner(); banner != "" {
			fmt.Println(" ", banner)
		}
		ctrl.CloseForm()
		return
	}
	fmt.Println("feedback submitted")
}

func deleteRecord(ctrl *dashboard.Controller, scanner *bufio.Scanner, arg string) {
	records := ctrl.Feedback()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(records) {
		fmt.Println("usage: delete <row number>")
		return
	}
	record := records[n-1]

	ctrl.RequestDelete(record.ID)
	answer := prompt(scanner, fmt.Sprintf("Delete feedback from %s? (y/n)", record.Name))
	if strings.ToLower(answer) != "y" {
		ctrl.CancelDelete()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ctrl.ConfirmDelete(ctx); err != nil {
		fmt.Println("delete failed:", err)
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func printHelp() {
	fmt.Println(`commands:
  search <text>    filter by name, email or message
  category <name>  filter by category (general, bug, feature, complaint, compliment, all)
  from <date>      records created on or after date (YYYY-MM-DD)
  to <date>        records created on or before date
  clear            reset all filters
  page <n> | next | prev
  add              submit new feedback
  delete <row>     delete a listed record (asks for confirmation)
  refresh          reload the current view
  quit`)
}
