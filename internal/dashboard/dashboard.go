// Package dashboard implements the feedback dashboard as a state controller:
// a submission form, a filter bar, a paginated list and a delete-confirmation
// flow, driven through the client API gateway.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/feedback-collector/backend/pkg/client"
)

// State is the dashboard's view state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateFormOpen
	StateDeleteConfirm
)

// DefaultDebounce is the quiet period after a search keystroke before the
// list is refetched.
const DefaultDebounce = 500 * time.Millisecond

// DefaultPageSize matches the server's default list page size.
const DefaultPageSize = 10

// Gateway is the slice of the API client the dashboard depends on.
type Gateway interface {
	List(ctx context.Context, params client.ListParams) (*client.ListResult, error)
	Create(ctx context.Context, params client.CreateParams) (*client.CreateResult, error)
	Delete(ctx context.Context, id string) error
}

var _ Gateway = (*client.Client)(nil)

// Filters holds the filter bar fields.
type Filters struct {
	Search    string
	Category  string
	StartDate string
	EndDate   string
}

func defaultFilters() Filters {
	return Filters{Category: "all"}
}

// Pagination holds the current page window figures.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	Total       int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the search quiet period.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounceDelay = d }
}

// WithPageSize overrides the list page size.
func WithPageSize(n int) Option {
	return func(c *Controller) { c.pageSize = n }
}

// WithOnChange registers a redraw callback invoked after every state change.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller owns the dashboard state. All methods are safe for concurrent
// use; the view observes state through the snapshot accessors and the
// onChange callback.
type Controller struct {
	gateway       Gateway
	pageSize      int
	debounceDelay time.Duration
	onChange      func()

	mu            sync.Mutex
	state         State
	filters       Filters
	feedback      []client.Feedback
	pagination    Pagination
	listErr       string
	formErrors    map[string]string
	formBanner    string
	pendingDelete string

	debounce *time.Timer
	// fetchSeq stamps every list fetch; only the response carrying the
	// newest stamp is applied, so a slow stale response can never
	// overwrite fresher data.
	fetchSeq uint64
}

// New returns a controller in the idle state with default filters.
func New(gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		gateway:       gateway,
		pageSize:      DefaultPageSize,
		debounceDelay: DefaultDebounce,
		state:         StateIdle,
		filters:       defaultFilters(),
		pagination:    Pagination{CurrentPage: 1, TotalPages: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches page 1 with the current filters. Call once on startup.
func (c *Controller) Load() {
	c.mu.Lock()
	c.startFetch(1)
	c.mu.Unlock()
	c.notify()
}

// SetSearch updates the search text. Clearing it refetches immediately;
// anything else refetches page 1 only after the quiet period, so rapid
// keystrokes coalesce into a single request.
func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	c.filters.Search = search
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	if search == "" {
		c.startFetch(1)
		c.mu.Unlock()
		c.notify()
		return
	}
	c.debounce = time.AfterFunc(c.debounceDelay, func() {
		c.mu.Lock()
		c.startFetch(1)
		c.mu.Unlock()
		c.notify()
	})
	c.mu.Unlock()
	c.notify()
}

// SetCategory updates the category filter and refetches page 1.
func (c *Controller) SetCategory(category string) {
	c.setFilterAndFetch(func(f *Filters) { f.Category = category })
}

// SetStartDate updates the lower date bound and refetches page 1.
func (c *Controller) SetStartDate(date string) {
	c.setFilterAndFetch(func(f *Filters) { f.StartDate = date })
}

// SetEndDate updates the upper date bound and refetches page 1.
func (c *Controller) SetEndDate(date string) {
	c.setFilterAndFetch(func(f *Filters) { f.EndDate = date })
}

// ClearFilters resets every filter field to its default and refetches page 1.
func (c *Controller) ClearFilters() {
	c.setFilterAndFetch(func(f *Filters) { *f = defaultFilters() })
}

func (c *Controller) setFilterAndFetch(apply func(*Filters)) {
	c.mu.Lock()
	apply(&c.filters)
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.startFetch(1)
	c.mu.Unlock()
	c.notify()
}

// GoToPage fetches the requested page. Out-of-range requests are ignored.
func (c *Controller) GoToPage(page int) {
	c.mu.Lock()
	if page < 1 || page > c.pagination.TotalPages {
		c.mu.Unlock()
		return
	}
	c.startFetch(page)
	c.mu.Unlock()
	c.notify()
}

// OpenForm shows the submission form.
func (c *Controller) OpenForm() {
	c.mu.Lock()
	c.state = StateFormOpen
	c.formErrors = nil
	c.formBanner = ""
	c.mu.Unlock()
	c.notify()
}

// CloseForm dismisses the submission form without submitting.
func (c *Controller) CloseForm() {
	c.mu.Lock()
	if c.state == StateFormOpen {
		c.state = StateIdle
	}
	c.mu.Unlock()
	c.notify()
}

// SubmitForm validates the form locally and, when valid, submits it. On
// success the form closes and page 1 is refetched so the new record surfaces
// at the top. Server-side field errors render per field; other failures set
// a banner error and leave the form open.
func (c *Controller) SubmitForm(ctx context.Context, form Form) error {
	if errs := ValidateForm(form); len(errs) > 0 {
		c.mu.Lock()
		c.formErrors = errs
		c.mu.Unlock()
		c.notify()
		return errors.New("form has validation errors")
	}

	params := client.CreateParams{
		Name:     form.Name,
		Email:    form.Email,
		Message:  form.Message,
		Category: form.Category,
	}
	if form.Rating != 0 {
		rating := form.Rating
		params.Rating = &rating
	}

	_, err := c.gateway.Create(ctx, params)
	if err != nil {
		c.mu.Lock()
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
			c.formErrors = make(map[string]string, len(apiErr.Errors))
			for _, fe := range apiErr.Errors {
				c.formErrors[fe.Field] = fe.Message
			}
		} else {
			c.formBanner = "Failed to submit feedback"
		}
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.mu.Lock()
	c.state = StateIdle
	c.formErrors = nil
	c.formBanner = ""
	c.startFetch(1)
	c.mu.Unlock()
	c.notify()
	return nil
}

// RequestDelete opens the confirmation dialog for one record.
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	c.state = StateDeleteConfirm
	c.pendingDelete = id
	c.mu.Unlock()
	c.notify()
}

// CancelDelete dismisses the confirmation dialog.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	if c.state == StateDeleteConfirm {
		c.state = StateIdle
	}
	c.pendingDelete = ""
	c.mu.Unlock()
	c.notify()
}

// ConfirmDelete deletes the pending record and refetches the current page.
// If the deleted record was the last one on a non-first page the resulting
// page may be short or empty; no back-navigation is performed.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id := c.pendingDelete
	c.pendingDelete = ""
	if c.state == StateDeleteConfirm {
		c.state = StateIdle
	}
	page := c.pagination.CurrentPage
	c.mu.Unlock()

	if id == "" {
		return nil
	}

	if err := c.gateway.Delete(ctx, id); err != nil {
		c.mu.Lock()
		c.listErr = "Failed to delete feedback. Please try again."
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.mu.Lock()
	c.startFetch(page)
	c.mu.Unlock()
	c.notify()
	return nil
}

// startFetch stamps and launches a list fetch. Caller must hold c.mu.
func (c *Controller) startFetch(page int) {
	c.fetchSeq++
	seq := c.fetchSeq
	if c.state == StateIdle {
		c.state = StateLoading
	}
	params := client.ListParams{
		Search:    c.filters.Search,
		Category:  c.filters.Category,
		StartDate: c.filters.StartDate,
		EndDate:   c.filters.EndDate,
		Page:      page,
		Limit:     c.pageSize,
	}

	go func() {
		result, err := c.gateway.List(context.Background(), params)
		c.applyResult(seq, result, err)
	}()
}

// applyResult installs a fetch response unless a newer fetch has started.
// Failed fetches keep the previous list content in place.
func (c *Controller) applyResult(seq uint64, result *client.ListResult, err error) {
	c.mu.Lock()
	if seq != c.fetchSeq {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.listErr = err.Error()
	} else {
		c.feedback = result.Feedback
		c.pagination = Pagination{
			CurrentPage: result.CurrentPage,
			TotalPages:  result.TotalPages,
			Total:       result.Total,
		}
		c.listErr = ""
	}
	if c.state == StateLoading {
		c.state = StateIdle
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// State returns the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Feedback returns the currently rendered page of records.
func (c *Controller) Feedback() []client.Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedback
}

// Pagination returns the current page window figures.
func (c *Controller) Pagination() Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Filters returns the current filter bar values.
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// FormErrors returns the per-field validation messages, if any.
func (c *Controller) FormErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formErrors
}

// FormBanner returns the submission-level error banner, if any.
func (c *Controller) FormBanner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formBanner
}

// ListError returns the last list or delete failure message, if any.
func (c *Controller) ListError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listErr
}

// PendingDelete returns the id awaiting delete confirmation, if any.
func (c *Controller) PendingDelete() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingDelete
}
